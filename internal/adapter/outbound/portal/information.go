package portal

import "context"

// Institutions lists all training institutions.
func (c *Client) Institutions(ctx context.Context) ([]Institution, error) {
	var resp dataEnvelope[[]Institution]
	if err := c.get(ctx, "information/institutions", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Trainings lists all training courses.
func (c *Client) Trainings(ctx context.Context) ([]Training, error) {
	var resp dataEnvelope[[]Training]
	if err := c.get(ctx, "information/training", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
