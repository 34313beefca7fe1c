package discover

type Feed struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}
