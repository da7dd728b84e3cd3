package ondilo

import (
	"context"
	"fmt"
)

// GetRecommendations returns the maintenance recommendations for a pool.
func (c *Client) GetRecommendations(ctx context.Context, poolID int) ([]Recommendation, error) {
	data, err := c.get(ctx, fmt.Sprintf("/pools/%d/recommendations", poolID), nil)
	if err != nil {
		return nil, err
	}

	recs, err := unmarshalResponse[[]Recommendation](data, "recommendations")
	if err != nil {
		return nil, err
	}
	return *recs, nil
}

// ValidateRecommendation marks a recommendation as done. The server answers
// with a bare JSON string, "Done" on success.
func (c *Client) ValidateRecommendation(ctx context.Context, poolID, recommendationID int) (string, error) {
	data, err := c.put(ctx, fmt.Sprintf("/pools/%d/recommendations/%d", poolID, recommendationID), nil)
	if err != nil {
		return "", err
	}

	result, err := unmarshalResponse[string](data, "recommendation validation")
	if err != nil {
		return "", err
	}
	return *result, nil
}
