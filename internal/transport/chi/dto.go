package chi

import (
	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
)

// ClauseBody is one advanced search row.
type ClauseBody struct {
	Mode     string `json:"mode"`
	Text     string `json:"text"`
	Operator string `json:"op"`
}

// FormatsBody holds the object format checkboxes.
type FormatsBody struct {
	Audio         bool `json:"audio"`
	Image         bool `json:"image"`
	MixedMaterial bool `json:"mixed_material"`
	MovingImage   bool `json:"moving_image"`
	PDF           bool `json:"pdf"`
}

// AdvancedSearchBody is the POST /advanced-search request body.
type AdvancedSearchBody struct {
	Clauses    []ClauseBody `json:"clauses"`
	Collection string       `json:"collection"`
	Genre      string       `json:"genre"`
	Topic      string       `json:"topic"`
	Formats    FormatsBody  `json:"formats"`
	Offset     int          `json:"offset"`
	Size       int          `json:"size"`
}

// PIDResponse is the body of GET /pid/{esid}.
type PIDResponse struct {
	PID string `json:"pid"`
}

// TitleResponse is the body of GET /title/{pid}.
type TitleResponse struct {
	Title string `json:"title"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func advancedFromBody(body *AdvancedSearchBody, page request.Page) (request.Advanced, error) {
	clauses := make([]request.Clause, 0, len(body.Clauses))
	for _, cb := range body.Clauses {
		m, err := mode.Parse(cb.Mode)
		if err != nil {
			return request.Advanced{}, err //nolint:wrapcheck // domain validation error
		}
		op, err := request.ParseOperator(cb.Operator)
		if err != nil {
			return request.Advanced{}, err //nolint:wrapcheck // domain validation error
		}
		c, err := request.NewClause(m, cb.Text, op)
		if err != nil {
			return request.Advanced{}, err //nolint:wrapcheck // domain validation error
		}
		clauses = append(clauses, c)
	}

	collection, err := request.ParseCollection(body.Collection)
	if err != nil {
		return request.Advanced{}, err //nolint:wrapcheck // domain validation error
	}

	return request.NewAdvanced(clauses, request.AdvancedOptions{ //nolint:wrapcheck // domain validation error
		Collection: collection,
		Genre:      body.Genre,
		Topic:      body.Topic,
		Formats: request.Formats{
			Audio:         body.Formats.Audio,
			Image:         body.Formats.Image,
			MixedMaterial: body.Formats.MixedMaterial,
			MovingImage:   body.Formats.MovingImage,
			PDF:           body.Formats.PDF,
		},
	}, page)
}
