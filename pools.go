package ondilo

import (
	"context"
	"fmt"
	"net/url"
)

// ListPools returns all pools and spas associated with the account.
func (c *Client) ListPools(ctx context.Context) ([]Pool, error) {
	data, err := c.get(ctx, "/pools", nil)
	if err != nil {
		return nil, err
	}

	pools, err := unmarshalResponse[[]Pool](data, "pool list")
	if err != nil {
		return nil, err
	}
	return *pools, nil
}

// GetICODetails returns the ICO device attached to a pool.
func (c *Client) GetICODetails(ctx context.Context, poolID int) (*ICODevice, error) {
	data, err := c.get(ctx, fmt.Sprintf("/pools/%d/device", poolID), nil)
	if err != nil {
		return nil, err
	}
	return unmarshalResponse[ICODevice](data, "device details")
}

// GetLastMeasures returns the latest reading for every measurement type of
// a pool.
func (c *Client) GetLastMeasures(ctx context.Context, poolID int) ([]Measure, error) {
	query := url.Values{}
	for _, mt := range AllMeasureTypes() {
		query.Add("types[]", string(mt))
	}

	data, err := c.get(ctx, fmt.Sprintf("/pools/%d/lastmeasures", poolID), query)
	if err != nil {
		return nil, err
	}

	measures, err := unmarshalResponse[[]Measure](data, "last measures")
	if err != nil {
		return nil, err
	}
	return *measures, nil
}

// GetPoolHistory returns the history series of one measurement type over a
// period. The period value is passed through uninterpreted; values outside
// day/week/month are rejected by the server, not the client.
func (c *Client) GetPoolHistory(ctx context.Context, poolID int, measure MeasureType, period Period) ([]Measure, error) {
	query := url.Values{}
	query.Set("type", string(measure))
	query.Set("period", string(period))

	data, err := c.get(ctx, fmt.Sprintf("/pools/%d/measures", poolID), query)
	if err != nil {
		return nil, err
	}

	measures, err := unmarshalResponse[[]Measure](data, "pool history")
	if err != nil {
		return nil, err
	}
	return *measures, nil
}

// GetPoolConfiguration returns the alert thresholds and maintenance
// settings of a pool.
func (c *Client) GetPoolConfiguration(ctx context.Context, poolID int) (*PoolConfiguration, error) {
	data, err := c.get(ctx, fmt.Sprintf("/pools/%d/configuration", poolID), nil)
	if err != nil {
		return nil, err
	}
	return unmarshalResponse[PoolConfiguration](data, "pool configuration")
}

// GetPoolShares returns the users a pool has been shared with.
func (c *Client) GetPoolShares(ctx context.Context, poolID int) ([]Share, error) {
	data, err := c.get(ctx, fmt.Sprintf("/pools/%d/shares", poolID), nil)
	if err != nil {
		return nil, err
	}

	shares, err := unmarshalResponse[[]Share](data, "pool shares")
	if err != nil {
		return nil, err
	}
	return *shares, nil
}
