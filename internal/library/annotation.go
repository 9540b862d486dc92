package library

import (
	"encoding/json"
	"fmt"
)

// PageContent is one page's worth of annotation material. Content is
// markdown-like text and may contain LaTeX-style math delimiters; the
// library treats it as opaque.
type PageContent struct {
	PageNumber   int    `json:"page_number"`
	TopicSummary string `json:"topic_summary,omitempty"`
	Content      string `json:"content"`
}

// Annotation is the structured per-page payload attached to a document.
type Annotation struct {
	LectureTitle string        `json:"lecture_title,omitempty"`
	Pages        []PageContent `json:"pages"`
}

// FindPage returns the first page whose page_number equals n, or nil if
// the annotation has no such page. Absence is a normal outcome, not an
// error: the study surface renders a "no notes for this page" state.
func (a *Annotation) FindPage(n int) *PageContent {
	for i := range a.Pages {
		if a.Pages[i].PageNumber == n {
			return &a.Pages[i]
		}
	}
	return nil
}

// annotationJSON mirrors Annotation for decoding. PageNumber is a
// pointer so a page object missing the field can be told apart from an
// explicit page 0.
type annotationJSON struct {
	LectureTitle string     `json:"lecture_title"`
	Pages        []pageJSON `json:"pages"`
}

type pageJSON struct {
	PageNumber   *int   `json:"page_number"`
	TopicSummary string `json:"topic_summary"`
	Content      string `json:"content"`
}

// ParseAnnotation decodes a raw annotation payload. The payload must be
// a JSON object whose pages field is an array of objects each carrying
// a page_number; anything else fails with ErrMalformedPayload.
func ParseAnnotation(raw []byte) (*Annotation, error) {
	var decoded annotationJSON
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if decoded.Pages == nil {
		return nil, fmt.Errorf("%w: missing pages array", ErrMalformedPayload)
	}

	ann := &Annotation{
		LectureTitle: decoded.LectureTitle,
		Pages:        make([]PageContent, len(decoded.Pages)),
	}
	for i, p := range decoded.Pages {
		if p.PageNumber == nil {
			return nil, fmt.Errorf("%w: pages[%d] has no page_number", ErrMalformedPayload, i)
		}
		ann.Pages[i] = PageContent{
			PageNumber:   *p.PageNumber,
			TopicSummary: p.TopicSummary,
			Content:      p.Content,
		}
	}
	return ann, nil
}
