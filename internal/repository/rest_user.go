package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

// RESTUserRepo implements UserRepo over PostgREST.
type RESTUserRepo struct {
	client *postgrest.Client
}

func NewRESTUserRepo(client *postgrest.Client) *RESTUserRepo {
	return &RESTUserRepo{client: client}
}

func (r *RESTUserRepo) Create(ctx context.Context, u *domain.User) error {
	row := userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
	if err := r.client.Insert(ctx, "users", row, nil); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *RESTUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	q := postgrest.From("users").Select("id,name,email,role,created_at").Eq("id", id).Single()
	if err := r.client.Select(ctx, q, &row); err != nil {
		return nil, translate("user", err)
	}
	return row.toDomain(), nil
}

func (r *RESTUserRepo) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	var row userRow
	q := postgrest.From("users").
		Select("id,name,email,role,created_at").
		Eq("email", lowerEmail(email)).
		Eq("role", string(role)).
		Single()
	if err := r.client.Select(ctx, q, &row); err != nil {
		return nil, translate("user", err)
	}
	return row.toDomain(), nil
}

// RESTUserDetailRepo implements UserDetailRepo over PostgREST.
type RESTUserDetailRepo struct {
	client *postgrest.Client
}

func NewRESTUserDetailRepo(client *postgrest.Client) *RESTUserDetailRepo {
	return &RESTUserDetailRepo{client: client}
}

type detailUpsert struct {
	UserID              string   `json:"user_id"`
	JobTitle            string   `json:"job_title"`
	Status              string   `json:"status"`
	ProfilePic          string   `json:"profile_pic"`
	Skills              []string `json:"skills"`
	TotalAvailableHours float64  `json:"total_available_hours"`
}

func (r *RESTUserDetailRepo) Upsert(ctx context.Context, d *domain.UserDetail) error {
	row := detailUpsert{
		UserID:              d.UserID,
		JobTitle:            d.JobTitle,
		Status:              domain.CoalesceStr(d.Status, domain.DefaultMemberStatus),
		ProfilePic:          d.ProfilePic,
		Skills:              d.Skills,
		TotalAvailableHours: d.TotalAvailableHours,
	}
	var updated []detailRow
	if err := r.client.Update(ctx, postgrest.From("user_details").Eq("user_id", d.UserID), row, &updated); err != nil {
		return fmt.Errorf("updating user detail: %w", err)
	}
	if len(updated) > 0 {
		return nil
	}
	if err := r.client.Insert(ctx, "user_details", row, nil); err != nil {
		return fmt.Errorf("inserting user detail: %w", err)
	}
	return nil
}

func (r *RESTUserDetailRepo) Get(ctx context.Context, userID string) (*domain.UserDetail, error) {
	var row detailRow
	q := postgrest.From("user_details").Eq("user_id", userID).Single()
	if err := r.client.Select(ctx, q, &row); err != nil {
		return nil, translate("user detail", err)
	}
	return row.toDomain(userID), nil
}

func (r *RESTUserDetailRepo) RestoreHours(ctx context.Context, userID string, hours float64) (float64, error) {
	current, err := r.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading availability: %w", err)
	}
	restored := math.Min(current.TotalAvailableHours+hours, domain.MaxWeeklyHours)

	patch := map[string]any{
		"status":                domain.DefaultMemberStatus,
		"total_available_hours": restored,
	}
	if err := r.client.Update(ctx, postgrest.From("user_details").Eq("user_id", userID), patch, nil); err != nil {
		return 0, fmt.Errorf("restoring availability: %w", err)
	}
	return restored, nil
}
