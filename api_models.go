package rsclient

import "context"

// ClassificationModel is a trained classifier available to the user,
// default models included.
type ClassificationModel struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	ModelName   string  `json:"modelName"`
	ModelPath   string  `json:"modelPath"`
	ModelType   string  `json:"modelType"`
	Description string  `json:"description"`
	Accuracy    float64 `json:"accuracy"`
	Parameters  string  `json:"parameters"`
	IsDefault   int     `json:"isDefault"`
	Status      int     `json:"status"`
	CreateTime  string  `json:"createTime"`
	UpdateTime  string  `json:"updateTime"`
}

// AvailableModels lists the classifiers the signed-in user may run.
func (c *Client) AvailableModels(ctx context.Context) ([]ClassificationModel, error) {
	var models []ClassificationModel
	if err := c.business.get(ctx, "/api/classification-model/available", nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}
