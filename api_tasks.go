package rsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// AnalysisTask is one queued or finished analysis run over an image.
type AnalysisTask struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	ImageID      int64  `json:"imageId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Algorithm    string `json:"algorithm"`
	Parameters   string `json:"parameters"`
	Status       int    `json:"status"`
	ErrorMessage string `json:"errorMessage"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	CreateTime   string `json:"createTime"`
	UpdateTime   string `json:"updateTime"`
}

// TaskCreate starts an analysis of the given image with the given model.
type TaskCreate struct {
	ImageID     int64  `json:"imageId"`
	ModelID     int64  `json:"modelId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskQuery filters the paged task listing.
type TaskQuery struct {
	PageQuery
	Name      string
	Algorithm string
	Status    *int
	ImageID   int64
}

// AlgorithmParameter describes one tunable parameter of an algorithm.
type AlgorithmParameter struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// AlgorithmInfo describes an inference algorithm and its parameters.
type AlgorithmInfo struct {
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	Parameters  map[string]AlgorithmParameter `json:"parameters"`
}

// CreateTask submits an analysis task.
func (c *Client) CreateTask(ctx context.Context, create TaskCreate) (*AnalysisTask, error) {
	var task AnalysisTask
	if err := c.business.post(ctx, "/tasks", create, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Tasks pages through the analysis tasks.
func (c *Client) Tasks(ctx context.Context, q TaskQuery) (*Page[AnalysisTask], error) {
	query := pageQueryValues(q.PageQuery)
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Algorithm != "" {
		query.Set("algorithm", q.Algorithm)
	}
	if q.Status != nil {
		query.Set("status", strconv.Itoa(*q.Status))
	}
	if q.ImageID != 0 {
		query.Set("imageId", strconv.FormatInt(q.ImageID, 10))
	}
	var page Page[AnalysisTask]
	if err := c.business.get(ctx, "/tasks", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Task fetches one analysis task by id.
func (c *Client) Task(ctx context.Context, id int64) (*AnalysisTask, error) {
	var task AnalysisTask
	if err := c.business.get(ctx, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskStatus fetches just the status code of a task, for polling.
func (c *Client) TaskStatus(ctx context.Context, id int64) (int, error) {
	var status int
	if err := c.business.get(ctx, fmt.Sprintf("/tasks/%d/status", id), nil, &status); err != nil {
		return 0, err
	}
	return status, nil
}

// DeleteTask removes an analysis task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.business.delete(ctx, fmt.Sprintf("/tasks/%d", id), nil)
}

// Algorithms lists the inference service's algorithms, keyed by name.
func (c *Client) Algorithms(ctx context.Context) (map[string]AlgorithmInfo, error) {
	var algos map[string]AlgorithmInfo
	if err := c.algo.get(ctx, "/algorithm", nil, &algos); err != nil {
		return nil, err
	}
	return algos, nil
}

// Algorithm fetches one algorithm's description.
func (c *Client) Algorithm(ctx context.Context, name string) (*AlgorithmInfo, error) {
	var algo AlgorithmInfo
	if err := c.algo.get(ctx, "/algorithm/"+url.PathEscape(name), nil, &algo); err != nil {
		return nil, err
	}
	return &algo, nil
}

type predictPayload struct {
	Algorithm  string `json:"algorithm"`
	Parameters any    `json:"parameters"`
}

// Predict runs an algorithm directly on the inference service. The
// result shape is algorithm-specific and returned undecoded.
func (c *Client) Predict(ctx context.Context, algorithm string, parameters any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.algo.post(ctx, "/algorithm/predict", predictPayload{Algorithm: algorithm, Parameters: parameters}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
