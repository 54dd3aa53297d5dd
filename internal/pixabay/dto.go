package pixabay

// SearchResponse is the root container for search API responses
type SearchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

// Hit represents one image record in a search response
type Hit struct {
	ID              int    `json:"id"`
	PageURL         string `json:"pageURL,omitempty"`
	Type            string `json:"type,omitempty"`
	Tags            string `json:"tags,omitempty"`
	PreviewURL      string `json:"previewURL,omitempty"`
	PreviewWidth    int    `json:"previewWidth,omitempty"`
	PreviewHeight   int    `json:"previewHeight,omitempty"`
	WebformatURL    string `json:"webformatURL,omitempty"`
	WebformatWidth  int    `json:"webformatWidth,omitempty"`
	WebformatHeight int    `json:"webformatHeight,omitempty"`
	LargeImageURL   string `json:"largeImageURL,omitempty"`
	ImageWidth      int    `json:"imageWidth,omitempty"`
	ImageHeight     int    `json:"imageHeight,omitempty"`
	ImageSize       int64  `json:"imageSize,omitempty"`
	Views           int    `json:"views,omitempty"`
	Downloads       int    `json:"downloads,omitempty"`
	Collections     int    `json:"collections,omitempty"`
	Likes           int    `json:"likes,omitempty"`
	Comments        int    `json:"comments,omitempty"`
	UserID          int    `json:"user_id,omitempty"`
	User            string `json:"user,omitempty"`
	UserImageURL    string `json:"userImageURL,omitempty"`
}
