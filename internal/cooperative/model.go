package cooperative

import (
	"time"

	"github.com/google/uuid"
)

// Categories a cooperative can belong to. Kept in sync with the
// CHECK constraint on the cooperatives table.
const (
	CategoryAgriculture = "agriculture"
	CategoryFinance     = "finance"
	CategoryHousing     = "housing"
	CategoryEducation   = "education"
	CategoryOther       = "other"
)

type Cooperative struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Members is filled only when the caller asks for expansion. A
	// member is an account whose cooperative_id points here; the
	// cooperative row does not own accounts.
	Members []Member `json:"members,omitempty"`
}

// Member is the trimmed account view used for member expansion.
type Member struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
