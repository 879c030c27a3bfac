package engine

// --- youtube_transcript tool ---

type TranscriptInput struct {
	Video     string   `json:"video" jsonschema:"YouTube video URL or 11-character video ID"`
	HTML      bool     `json:"html,omitempty" jsonschema:"Render paragraph breaks as <br><br> instead of blank lines"`
	Languages []string `json:"languages,omitempty" jsonschema:"Accepted caption language codes, e.g. [\"en\",\"ru\"]. Default: server allow-list"`
}

type TranscriptOutput struct {
	VideoID    string `json:"video_id"`
	VideoURL   string `json:"video_url"`
	EmbedURL   string `json:"video_embed_link"`
	Language   string `json:"language,omitempty"`
	Available  bool   `json:"available"`  // false = no usable captions, Text holds a notice
	Paragraphs int    `json:"paragraphs"` // number of paragraphs in Text
	Text       string `json:"text"`
}
