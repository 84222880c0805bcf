package model

// Review is a single customer review shown by the review carousel.
// Rating, PhotoURL and RelativeTime are optional. A nil Rating means absent;
// a zero one is a real score of 0.
type Review struct {
	Text         string `json:"text"`
	Author       string `json:"author"`
	Rating       *int   `json:"rating,omitempty"`
	PhotoURL     string `json:"photo,omitempty"`
	RelativeTime string `json:"relativeTime,omitempty"`
}

// Service is a workshop offering shown by the services carousel.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"desc"`
	Icon        string `json:"icon"`
}

// Direction is the transition hint handed to renderers.
// It never affects index arithmetic.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// MaxRating is the number of star slots on a review card.
const MaxRating = 5

// ClampRating keeps a rating within 0..MaxRating.
func ClampRating(r int) int {
	switch {
	case r < 0:
		return 0
	case r > MaxRating:
		return MaxRating
	}
	return r
}

// Rating returns a pointer to n, for review literals.
func Rating(n int) *int { return &n }

// Score is the clamped star count, 0 when the review has no rating.
func (r Review) Score() int {
	if r.Rating == nil {
		return 0
	}
	return ClampRating(*r.Rating)
}
