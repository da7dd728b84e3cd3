// Package ondilo provides a Go client library for the Ondilo ICO customer API.
//
// Ondilo's ICO is a connected water-quality monitor for pools and spas. The
// library handles the OAuth2 authorization-code flow against
// https://interop.ondilo.com and exposes typed accessors for pools, devices,
// measurements, and maintenance recommendations. An expired access token is
// refreshed transparently, with at most one refresh-and-retry per call.
//
// # Authentication
//
// Start the authorization-code flow and exchange the callback:
//
//	client := ondilo.NewClient(&ondilo.Config{
//	    RedirectURI: "https://your-app.com/callback",
//	})
//	url := client.AuthorizationURL()
//	// ... redirect the user, then on the callback:
//	token, err := client.ExchangeAuthorizationResponse(ctx, callbackURL)
//
// Or resume a previous session from a saved token set:
//
//	client := ondilo.NewClient(nil, ondilo.WithToken(savedToken))
//
// To persist tokens across restarts, wire a store; refreshed tokens are
// saved automatically:
//
//	store := ondilo.NewFileTokenStore("tokens.json")
//	client := ondilo.NewClient(cfg, ondilo.WithTokenStore(store))
//
// # Basic Usage
//
// List pools and read the latest measurements:
//
//	pools, err := client.ListPools(ctx)
//	for _, pool := range pools {
//	    measures, err := client.GetLastMeasures(ctx, pool.ID)
//	    for _, m := range measures {
//	        fmt.Printf("%s: %s = %.2f\n", pool.Name, m.DataType, m.Value)
//	    }
//	}
//
// Fetch a week of temperature history:
//
//	history, err := client.GetPoolHistory(ctx, pool.ID, ondilo.MeasureTemperature, ondilo.PeriodWeek)
//
// Act on maintenance recommendations:
//
//	recs, err := client.GetRecommendations(ctx, pool.ID)
//	result, err := client.ValidateRecommendation(ctx, pool.ID, recs[0].ID)
//
// # Error Handling
//
// Failures surface as typed errors:
//
//	pools, err := client.ListPools(ctx)
//	if err != nil {
//	    if ondilo.IsAuthError(err) {
//	        // Grant rejected; restart the flow from AuthorizationURL.
//	    } else if ondilo.IsNotFound(err) {
//	        // Resource doesn't exist
//	    }
//	}
//
// For more information, see https://interop.ondilo.com/docs/
package ondilo
