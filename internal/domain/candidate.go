package domain

import (
	"context"
	"time"
)

const (
	DefaultAllegations    = "No known allegations."
	DefaultCriminalRecord = "No known criminal record."

	MsgCandidateNotFound = "Candidate not found"
	MsgCandidateRemoved  = "Candidate removed successfully"
)

// Candidate is a stored candidate profile. The three visitor sets are only
// ever changed by interactions, never by admin edits.
type Candidate struct {
	ID               string    `json:"id"`
	Name             string    `json:"name" validate:"required"`
	Age              *int      `json:"age" validate:"required"`
	Party            string    `json:"party" validate:"required"`
	Constituency     string    `json:"constituency" validate:"required"`
	Education        string    `json:"education" validate:"required"`
	Biography        string    `json:"biography" validate:"required"`
	PoliticalHistory *string   `json:"politicalHistory,omitempty"`
	Achievements     *string   `json:"achievements,omitempty"`
	Allegations      string    `json:"allegations"`
	CriminalRecord   string    `json:"criminalRecord"`
	YoutubeURL       *string   `json:"youtubeUrl,omitempty"`
	ImageURL         *string   `json:"imageUrl,omitempty"`
	ViewedBy         []string  `json:"viewedBy"`
	LikedBy          []string  `json:"likedBy"`
	DislikedBy       []string  `json:"dislikedBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CandidateSummary is a candidate with its derived counts, as listed publicly.
type CandidateSummary struct {
	Candidate
	LikesCount    int `json:"likesCount"`
	DislikesCount int `json:"dislikesCount"`
	ViewsCount    int `json:"viewsCount"`
}

// CandidateDetail adds the requesting visitor's current vote.
type CandidateDetail struct {
	CandidateSummary
	UserHasLiked    bool `json:"userHasLiked"`
	UserHasDisliked bool `json:"userHasDisliked"`
}

// CandidateInput carries admin-supplied fields. Nil means "not provided",
// which matters for partial updates.
type CandidateInput struct {
	Name             *string `json:"name" form:"name"`
	Age              *int    `json:"age" form:"age"`
	Party            *string `json:"party" form:"party"`
	Constituency     *string `json:"constituency" form:"constituency"`
	Education        *string `json:"education" form:"education"`
	Biography        *string `json:"biography" form:"biography"`
	PoliticalHistory *string `json:"politicalHistory" form:"politicalHistory"`
	Achievements     *string `json:"achievements" form:"achievements"`
	Allegations      *string `json:"allegations" form:"allegations"`
	CriminalRecord   *string `json:"criminalRecord" form:"criminalRecord"`
	YoutubeURL       *string `json:"youtubeUrl" form:"youtubeUrl"`
	ImageURL         *string `json:"imageUrl" form:"imageUrl"`
}

// ApplyTo copies every provided field onto c.
func (in CandidateInput) ApplyTo(c *Candidate) {
	setString(&c.Name, in.Name)
	if in.Age != nil {
		age := *in.Age
		c.Age = &age
	}
	setString(&c.Party, in.Party)
	setString(&c.Constituency, in.Constituency)
	setString(&c.Education, in.Education)
	setString(&c.Biography, in.Biography)
	setOptional(&c.PoliticalHistory, in.PoliticalHistory)
	setOptional(&c.Achievements, in.Achievements)
	setString(&c.Allegations, in.Allegations)
	setString(&c.CriminalRecord, in.CriminalRecord)
	setOptional(&c.YoutubeURL, in.YoutubeURL)
	setOptional(&c.ImageURL, in.ImageURL)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setOptional(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// ApplyDefaults fills the text defaults and normalises nil sets to empty ones.
func (c *Candidate) ApplyDefaults() {
	if c.Allegations == "" {
		c.Allegations = DefaultAllegations
	}
	if c.CriminalRecord == "" {
		c.CriminalRecord = DefaultCriminalRecord
	}
	if c.ViewedBy == nil {
		c.ViewedBy = []string{}
	}
	if c.LikedBy == nil {
		c.LikedBy = []string{}
	}
	if c.DislikedBy == nil {
		c.DislikedBy = []string{}
	}
}

func (c Candidate) Summary() CandidateSummary {
	return CandidateSummary{
		Candidate:     c,
		LikesCount:    len(c.LikedBy),
		DislikesCount: len(c.DislikedBy),
		ViewsCount:    len(c.ViewedBy),
	}
}

func (c Candidate) DetailFor(visitor string) CandidateDetail {
	state := StateOf(&c, visitor)
	return CandidateDetail{
		CandidateSummary: c.Summary(),
		UserHasLiked:     state == StateLiked,
		UserHasDisliked:  state == StateDisliked,
	}
}

type CandidateRepository interface {
	// List returns every candidate ordered by likes, then newest first.
	List(ctx context.Context) ([]Candidate, error)
	// GetByID returns nil, nil when no candidate has that id.
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Create(ctx context.Context, c *Candidate) error
	// Update writes the editable columns only; the visitor sets are untouched.
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error
	// RecordView adds visitor to viewed_by if absent. It is a no-op for unknown ids.
	RecordView(ctx context.Context, id, visitor string) error
	ToggleInteraction(ctx context.Context, id, visitor string, action Action) (*InteractionResult, error)
}

type CandidateUsecase interface {
	List(ctx context.Context) ([]CandidateSummary, error)
	Get(ctx context.Context, id, visitor string) (*CandidateDetail, error)
	Create(ctx context.Context, in CandidateInput) (*Candidate, error)
	Update(ctx context.Context, id string, in CandidateInput) (*Candidate, error)
	Delete(ctx context.Context, id string) error
	Interact(ctx context.Context, id, visitor, action string) (*InteractionResult, error)
}

// ImageUsecase turns an uploaded portrait into a public URL.
type ImageUsecase interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}
