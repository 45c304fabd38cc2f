package rsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Training task status codes.
const (
	TrainStatusRunning   = 0
	TrainStatusCompleted = 1
	TrainStatusFailed    = 2
)

// TrainTask is one model training run over a dataset.
type TrainTask struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	UserID           int64   `json:"userId"`
	DatasetBucket    string  `json:"datasetBucket"`
	DatasetObjectKey string  `json:"datasetObjectKey"`
	ModelBucket      string  `json:"modelBucket"`
	ModelObjectKey   string  `json:"modelObjectKey"`
	Epochs           int     `json:"epochs"`
	BatchSize        int     `json:"batchSize"`
	LearningRate     float64 `json:"learningRate"`
	Status           int     `json:"status"`
	ErrorMsg         string  `json:"errorMsg"`
	Accuracy         float64 `json:"accuracy"`
	Loss             float64 `json:"loss"`
	CreateTime       string  `json:"createTime"`
	UpdateTime       string  `json:"updateTime"`
}

// TrainTaskCreate starts a training run.
type TrainTaskCreate struct {
	Name         string  `json:"name"`
	DatasetID    int64   `json:"datasetId"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batchSize"`
	LearningRate float64 `json:"learningRate"`
}

// TrainTaskQuery filters the paged training task listing.
type TrainTaskQuery struct {
	PageQuery
	Name   string
	Status *int
}

// CreateTrainTask submits a training run, returning its id.
func (c *Client) CreateTrainTask(ctx context.Context, create TrainTaskCreate) (int64, error) {
	var id json.Number
	if err := c.business.post(ctx, "/train-task", create, &id); err != nil {
		return 0, err
	}
	return id.Int64()
}

// TrainTasks pages through the training runs.
func (c *Client) TrainTasks(ctx context.Context, q TrainTaskQuery) (*Page[TrainTask], error) {
	query := pageQueryValues(q.PageQuery)
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Status != nil {
		query.Set("status", strconv.Itoa(*q.Status))
	}
	var page Page[TrainTask]
	if err := c.business.get(ctx, "/train-task/page", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TrainTask fetches one training run by id.
func (c *Client) TrainTask(ctx context.Context, id int64) (*TrainTask, error) {
	var task TrainTask
	if err := c.business.get(ctx, fmt.Sprintf("/train-task/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTrainTask removes a training run.
func (c *Client) DeleteTrainTask(ctx context.Context, id int64) error {
	return c.business.delete(ctx, fmt.Sprintf("/train-task/%d", id), nil)
}
