// Package resources holds the console's clients for the backend collections. Each
// collection has a REST variant and an in-memory mock variant with the same shapes.
package resources

import (
	"context"
	"time"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/domain"
)

// Service is the uniform CRUD contract shared by every collection. id is the
// collection's key: the name for victims, the username for users, the decimal id
// otherwise.
type Service[T, C, U any] interface {
	List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input C) (*T, error)
	Update(ctx context.Context, id string, input U) (*T, error)
	Delete(ctx context.Context, id string) error
}

type (
	VictimService  = Service[domain.Victim, dto.CreateVictimRequest, dto.UpdateVictimRequest]
	AttemptService = Service[domain.Attempt, dto.CreateAttemptRequest, dto.UpdateAttemptRequest]
	ReportService  = Service[domain.Report, dto.CreateReportRequest, dto.UpdateReportRequest]
	RewardService  = Service[domain.Reward, dto.CreateRewardRequest, dto.UpdateRewardRequest]
	ContentService = Service[domain.Content, dto.CreateContentRequest, dto.UpdateContentRequest]
	UserService    = Service[domain.User, dto.CreateUserRequest, dto.UpdateUserRequest]
)

// ProfileService answers "who am I" for the current session.
type ProfileService interface {
	Me(ctx context.Context) (*domain.User, error)
}

// Catalog groups one client per collection.
type Catalog struct {
	Victims  VictimService
	Attempts AttemptService
	Reports  ReportService
	Rewards  RewardService
	Content  ContentService
	Users    UserService
	Profile  ProfileService
}

// Mode selects between the REST and mock variants.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeMock   Mode = "mock"
)

// ModeFor derives the mode from configuration.
func ModeFor(cfg config.Config) Mode {
	if cfg.API.UseMockServices {
		return ModeMock
	}
	return ModeRemote
}

// Options carries the collaborators of both variants.
type Options struct {
	// Client is required in ModeRemote and should carry the request authorizer.
	Client *apiclient.Client
	// Latency delays every mock call.
	Latency time.Duration
	// Actor names the current user for mock ownership and Me. Defaults to
	// ActorFromContext.
	Actor ActorFunc
	// Accounts mirrors mock user creation and deletion into the login directory.
	Accounts UserAccounts
	Now      func() time.Time
}

// New builds the catalog once for the chosen mode.
func New(mode Mode, opts Options) *Catalog {
	if mode == ModeRemote {
		return newRemoteCatalog(opts.Client)
	}
	return newMockCatalog(opts)
}
