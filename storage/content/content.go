// Package content persists the site's editorial entities. Entities are kept
// document-style: each collection is one table holding the full entity as a
// JSON doc plus the handful of columns the API filters on.
package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gosimple/slug"
)

// Collection names. Each maps to its own table.
const (
	CollectionProjects     = "projects"
	CollectionServices     = "services"
	CollectionTestimonials = "testimonials"
	CollectionInquiries    = "inquiries"
	CollectionSettings     = "settings"
)

// SettingsDocID is the fixed id of the singleton site settings document.
const SettingsDocID = "site"

// Document is one stored entity. Data holds the JSON-encoded entity; the
// remaining fields are denormalized for filtering and ordering.
type Document struct {
	ID        string
	Slug      string
	Category  string
	Featured  bool
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Category string
	Featured *bool
	Page     int
	Limit    int
}

// Pagination describes the page of results returned by List.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Store is the document CRUD surface backing the content API.
type Store interface {
	List(ctx context.Context, collection string, f Filter) ([]Document, *Pagination, error)
	Get(ctx context.Context, collection string, id string) (*Document, error)
	GetBySlug(ctx context.Context, collection string, slug string) (*Document, error)
	Insert(ctx context.Context, collection string, doc *Document) error
	Update(ctx context.Context, collection string, doc *Document) error
	Upsert(ctx context.Context, collection string, doc *Document) error
	Delete(ctx context.Context, collection string, id string) error
	Close() error
}

type ProjectClient struct {
	Name        string `json:"name,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Testimonial string `json:"testimonial,omitempty"`
	Rating      int    `json:"rating,omitempty"`
}

type Project struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	Category     string            `json:"category"`
	Description  string            `json:"description"`
	CaseStudyUrl string            `json:"caseStudyUrl,omitempty"`
	Images       []string          `json:"images"`
	Tags         []string          `json:"tags"`
	Metrics      map[string]string `json:"metrics,omitempty"`
	Client       *ProjectClient    `json:"client,omitempty"`
	Featured     bool              `json:"featured"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type Service struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Icon             string    `json:"icon,omitempty"`
	Image            string    `json:"image,omitempty"`
	Features         []string  `json:"features"`
	Benefits         []string  `json:"benefits"`
	Category         string    `json:"category,omitempty"`
	Order            int       `json:"order"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Testimonial struct {
	ID        string    `json:"id"`
	Quote     string    `json:"quote"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Rating    int       `json:"rating"`
	Photo     string    `json:"photo,omitempty"`
	Logo      string    `json:"logo,omitempty"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Inquiry statuses.
const (
	InquiryStatusNew      = "new"
	InquiryStatusRead     = "read"
	InquiryStatusArchived = "archived"
)

type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SiteSettings struct {
	CompanyName string            `json:"companyName"`
	Tagline     string            `json:"tagline,omitempty"`
	Description string            `json:"description,omitempty"`
	Logo        string            `json:"logo,omitempty"`
	Favicon     string            `json:"favicon,omitempty"`
	Contact     map[string]string `json:"contact,omitempty"`
	SocialMedia map[string]string `json:"socialMedia,omitempty"`
	Theme       map[string]string `json:"theme,omitempty"`
}

// SlugFromTitle derives a URL slug from a display title.
func SlugFromTitle(title string) string {
	return slug.Make(title)
}

// MarshalDoc encodes an entity into a Document with the given index fields.
func MarshalDoc(id string, entitySlug string, category string, featured bool, entity any) (*Document, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}

	return &Document{
		ID:       id,
		Slug:     entitySlug,
		Category: category,
		Featured: featured,
		Data:     data,
	}, nil
}

// UnmarshalDoc decodes a stored document into the provided entity pointer.
func UnmarshalDoc(doc *Document, entity any) error {
	return json.Unmarshal(doc.Data, entity)
}
