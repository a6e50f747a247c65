package steam

// EventsResponse is the payload of the partner events endpoint.
type EventsResponse struct {
	Success int     `json:"success"`
	Events  []Event `json:"events"`
}

type Event struct {
	GID              string            `json:"gid"`
	EventType        int               `json:"event_type"`
	EventName        string            `json:"event_name"`
	AnnouncementBody *AnnouncementBody `json:"announcement_body"`
}

type AnnouncementBody struct {
	GID        string `json:"gid"`
	UpdateTime int64  `json:"updatetime"`
	PostTime   int64  `json:"posttime"`
	Headline   string `json:"headline"`
	Body       string `json:"body"`
	Language   *int   `json:"language"`
}
