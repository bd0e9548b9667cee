package resources

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/repository"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

// UserAccounts keeps the login directory in step with the mock users collection.
type UserAccounts interface {
	CreateAccount(ctx context.Context, input dto.CreateUserRequest) error
	DeleteAccount(ctx context.Context, username string) error
}

type accountDirectory struct {
	repo repository.AccountRepository
	hash func(string) (string, error)
}

// NewAccountDirectory adapts an account repository so that users created through the
// users collection can log in.
func NewAccountDirectory(repo repository.AccountRepository, hash func(string) (string, error)) UserAccounts {
	return &accountDirectory{repo: repo, hash: hash}
}

func (d *accountDirectory) CreateAccount(ctx context.Context, input dto.CreateUserRequest) error {
	passwordHash, err := d.hash(input.Password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	err = d.repo.Create(ctx, &domain.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         input.Role,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict("User with this name already exists", map[string]any{"id": input.Username})
	}
	return err
}

func (d *accountDirectory) DeleteAccount(ctx context.Context, username string) error {
	if err := d.repo.Delete(ctx, username); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func ownedBy(owner string, params domain.ListParams) bool {
	return params.DaemonUsername == "" || owner == params.DaemonUsername
}

func maxID[T any](items []T, id func(*T) int64) int64 {
	var highest int64
	for i := range items {
		if v := id(&items[i]); v > highest {
			highest = v
		}
	}
	return highest
}

func newMockCatalog(opts Options) *Catalog {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	actor := opts.Actor
	if actor == nil {
		actor = ActorFromContext
	}

	victims := &mockService[domain.Victim, dto.CreateVictimRequest, dto.UpdateVictimRequest]{
		entity:  "Victim",
		latency: opts.Latency,
		now:     now,
		items:   fixtureVictims(),
		key:     func(v *domain.Victim) string { return v.Name },
		build: func(_ context.Context, _ int64, in dto.CreateVictimRequest, now time.Time) (domain.Victim, error) {
			return domain.Victim{Name: in.Name, DangerLevel: in.DangerLevel, Notes: in.Notes, CreatedAt: now, UpdatedAt: now}, nil
		},
		apply: func(v *domain.Victim, in dto.UpdateVictimRequest, now time.Time) {
			if in.DangerLevel != nil {
				v.DangerLevel = *in.DangerLevel
			}
			if in.Notes != nil {
				v.Notes = *in.Notes
			}
			v.UpdatedAt = now
		},
	}

	attemptFixtures := fixtureAttempts()
	attempts := &mockService[domain.Attempt, dto.CreateAttemptRequest, dto.UpdateAttemptRequest]{
		entity:  "Attempt",
		latency: opts.Latency,
		now:     now,
		items:   attemptFixtures,
		nextID:  maxID(attemptFixtures, func(a *domain.Attempt) int64 { return a.ID }) + 1,
		key:     func(a *domain.Attempt) string { return idKey(a.ID) },
		matches: func(a *domain.Attempt, p domain.ListParams) bool { return ownedBy(a.DaemonUsername, p) },
		build: func(ctx context.Context, id int64, in dto.CreateAttemptRequest, now time.Time) (domain.Attempt, error) {
			owner := actor(ctx)
			if owner == "" {
				return domain.Attempt{}, apperrors.NewUnauthorized("a signed-in daemon is required")
			}
			return domain.Attempt{
				ID:             id,
				VictimName:     in.VictimName,
				Description:    in.Description,
				State:          domain.AttemptStatePending,
				DaemonUsername: owner,
				CreatedAt:      now,
				UpdatedAt:      now,
			}, nil
		},
		apply: func(a *domain.Attempt, in dto.UpdateAttemptRequest, now time.Time) {
			if in.Description != nil {
				a.Description = *in.Description
			}
			if in.State != nil {
				a.State = *in.State
			}
			a.UpdatedAt = now
		},
	}

	reportFixtures := fixtureReports()
	reports := &mockService[domain.Report, dto.CreateReportRequest, dto.UpdateReportRequest]{
		entity:  "Report",
		latency: opts.Latency,
		now:     now,
		items:   reportFixtures,
		nextID:  maxID(reportFixtures, func(r *domain.Report) int64 { return r.ID }) + 1,
		key:     func(r *domain.Report) string { return idKey(r.ID) },
		build: func(_ context.Context, id int64, in dto.CreateReportRequest, now time.Time) (domain.Report, error) {
			return domain.Report{ID: id, Title: in.Title, Description: in.Description, CreatedAt: now}, nil
		},
		apply: func(r *domain.Report, in dto.UpdateReportRequest, _ time.Time) {
			if in.Title != nil {
				r.Title = *in.Title
			}
			if in.Description != nil {
				r.Description = *in.Description
			}
		},
	}

	rewardFixtures := fixtureRewards()
	rewards := &mockService[domain.Reward, dto.CreateRewardRequest, dto.UpdateRewardRequest]{
		entity:  "Reward",
		latency: opts.Latency,
		now:     now,
		items:   rewardFixtures,
		nextID:  maxID(rewardFixtures, func(r *domain.Reward) int64 { return r.ID }) + 1,
		key:     func(r *domain.Reward) string { return idKey(r.ID) },
		matches: func(r *domain.Reward, p domain.ListParams) bool { return ownedBy(r.DaemonUsername, p) },
		build: func(_ context.Context, id int64, in dto.CreateRewardRequest, now time.Time) (domain.Reward, error) {
			return domain.Reward{ID: id, DaemonUsername: in.DaemonUsername, Type: in.Type, Description: in.Description, CreatedAt: now}, nil
		},
		apply: func(r *domain.Reward, in dto.UpdateRewardRequest, _ time.Time) {
			if in.Type != nil {
				r.Type = *in.Type
			}
			if in.Description != nil {
				r.Description = *in.Description
			}
		},
	}

	contentFixtures := fixtureContent()
	content := &mockService[domain.Content, dto.CreateContentRequest, dto.UpdateContentRequest]{
		entity:  "Content",
		latency: opts.Latency,
		now:     now,
		items:   contentFixtures,
		nextID:  maxID(contentFixtures, func(c *domain.Content) int64 { return c.ID }) + 1,
		key:     func(c *domain.Content) string { return idKey(c.ID) },
		build: func(_ context.Context, id int64, in dto.CreateContentRequest, now time.Time) (domain.Content, error) {
			return domain.Content{ID: id, Title: in.Title, Body: in.Body, CreatedAt: now, UpdatedAt: now}, nil
		},
		apply: func(c *domain.Content, in dto.UpdateContentRequest, now time.Time) {
			if in.Title != nil {
				c.Title = *in.Title
			}
			if in.Body != nil {
				c.Body = *in.Body
			}
			c.UpdatedAt = now
		},
	}

	users := &mockService[domain.User, dto.CreateUserRequest, dto.UpdateUserRequest]{
		entity:  "User",
		latency: opts.Latency,
		now:     now,
		items:   fixtureUsers(),
		key:     func(u *domain.User) string { return u.Username },
		build: func(_ context.Context, _ int64, in dto.CreateUserRequest, now time.Time) (domain.User, error) {
			return domain.User{Username: in.Username, Email: in.Email, Role: in.Role, CreatedAt: now, UpdatedAt: now}, nil
		},
		apply: func(u *domain.User, in dto.UpdateUserRequest, now time.Time) {
			if in.Email != nil {
				u.Email = *in.Email
			}
			if in.Role != nil {
				u.Role = *in.Role
			}
			u.UpdatedAt = now
		},
	}
	if opts.Accounts != nil {
		users.afterCreate = func(ctx context.Context, _ *domain.User, in dto.CreateUserRequest) error {
			return opts.Accounts.CreateAccount(ctx, in)
		}
		users.afterDelete = func(ctx context.Context, u *domain.User) error {
			return opts.Accounts.DeleteAccount(ctx, u.Username)
		}
	}

	return &Catalog{
		Victims:  victims,
		Attempts: attempts,
		Reports:  reports,
		Rewards:  rewards,
		Content:  content,
		Users:    users,
		Profile:  &mockProfile{users: users, actor: actor},
	}
}

type mockProfile struct {
	users UserService
	actor ActorFunc
}

func (p *mockProfile) Me(ctx context.Context) (*domain.User, error) {
	username := p.actor(ctx)
	if username == "" {
		return nil, apperrors.NewUnauthorized("no active session")
	}
	return p.users.Get(ctx, username)
}
