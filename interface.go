package ondilo

import (
	"context"

	"golang.org/x/oauth2"
)

// OndiloClient defines the interface for Ondilo customer API operations.
// Client implements it; consumers can substitute a mock in tests.
type OndiloClient interface {
	// Authorization flow
	AuthorizationURL() string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	ExchangeAuthorizationResponse(ctx context.Context, authorizationResponse string) (*oauth2.Token, error)
	RefreshToken(ctx context.Context) (*oauth2.Token, error)
	Token() *oauth2.Token
	SetToken(token *oauth2.Token)
	IsAuthenticated() bool

	// Pool operations
	ListPools(ctx context.Context) ([]Pool, error)
	GetICODetails(ctx context.Context, poolID int) (*ICODevice, error)
	GetLastMeasures(ctx context.Context, poolID int) ([]Measure, error)
	GetPoolHistory(ctx context.Context, poolID int, measure MeasureType, period Period) ([]Measure, error)
	GetPoolConfiguration(ctx context.Context, poolID int) (*PoolConfiguration, error)
	GetPoolShares(ctx context.Context, poolID int) ([]Share, error)

	// Recommendation operations
	GetRecommendations(ctx context.Context, poolID int) ([]Recommendation, error)
	ValidateRecommendation(ctx context.Context, poolID, recommendationID int) (string, error)

	// User operations
	GetUserInfo(ctx context.Context) (*UserInfo, error)
	GetUserUnits(ctx context.Context) (*UserUnits, error)
}

// Compile-time check that Client satisfies the interface.
var _ OndiloClient = (*Client)(nil)
