package pixabay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/log"
)

const sampleResponse = `{
	"total": 4692,
	"totalHits": 45,
	"hits": [
		{
			"id": 195893,
			"pageURL": "https://pixabay.com/en/blossom-bloom-flower-195893/",
			"type": "photo",
			"tags": "blossom, bloom, flower",
			"previewURL": "https://cdn.pixabay.com/photo/preview.jpg",
			"previewWidth": 150,
			"previewHeight": 84,
			"webformatURL": "https://pixabay.com/get/webformat.jpg",
			"webformatWidth": 640,
			"webformatHeight": 360,
			"largeImageURL": "https://pixabay.com/get/large.jpg",
			"imageWidth": 4000,
			"imageHeight": 2250,
			"imageSize": 4731420,
			"views": 7671,
			"downloads": 6439,
			"likes": 5,
			"comments": 2,
			"user_id": 48777,
			"user": "Josch13",
			"userImageURL": "https://cdn.pixabay.com/user/avatar.jpg"
		}
	]
}`

func TestClient_SearchSendsRequiredParams(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query = map[string]string{
			"key":        q.Get("key"),
			"q":          q.Get("q"),
			"page":       q.Get("page"),
			"per_page":   q.Get("per_page"),
			"image_type": q.Get("image_type"),
			"safesearch": q.Get("safesearch"),
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", log.NullLogger())
	_, err := c.Search(context.Background(), "yellow flowers", 3)
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"key":        "test-key",
		"q":          "yellow flowers",
		"page":       "3",
		"per_page":   "20",
		"image_type": "photo",
		"safesearch": "true",
	}, query)
}

func TestClient_SearchMapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", log.NullLogger())
	result, err := c.Search(context.Background(), "flowers", 1)
	require.NoError(t, err)

	require.Equal(t, 4692, result.Total)
	require.Equal(t, 45, result.TotalHits)
	require.Len(t, result.Hits, 1)

	img := result.Hits[0]
	require.Equal(t, 195893, img.ID)
	require.Equal(t, "blossom, bloom, flower", img.Tags)
	require.Equal(t, "https://cdn.pixabay.com/photo/preview.jpg", img.PreviewURL)
	require.Equal(t, "https://pixabay.com/get/webformat.jpg", img.WebFormatURL)
	require.Equal(t, "https://pixabay.com/get/large.jpg", img.LargeImageURL)
	require.Equal(t, "Josch13", img.User)
	require.Equal(t, 7671, img.Views)
	require.Equal(t, 5, img.Likes)
}

func TestClient_SearchClampsPageToOne(t *testing.T) {
	var page string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page = r.URL.Query().Get("page")
		w.Write([]byte(`{"total":0,"totalHits":0,"hits":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", log.NullLogger())
	_, err := c.Search(context.Background(), "flowers", 0)
	require.NoError(t, err)
	require.Equal(t, "1", page)
}

func TestClient_SearchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "[ERROR 400] \"key\" is missing", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", log.NullLogger())
	_, err := c.Search(context.Background(), "flowers", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code: 400")
}

func TestClient_SearchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": "not a number"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", log.NullLogger())
	_, err := c.Search(context.Background(), "flowers", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse response")
}

func TestClient_SearchUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, "test-key", log.NullLogger())
	_, err := c.Search(context.Background(), "flowers", 1)
	require.ErrorIs(t, err, domain.ErrServiceOffline)
}

func TestClient_FetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	c := NewClient("", "test-key", log.NullLogger())
	data, err := c.Fetch(context.Background(), srv.URL+"/photo.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("jpegbytes"), data)
}
