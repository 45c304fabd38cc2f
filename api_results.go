package rsclient

import (
	"context"
	"fmt"
)

// AnalysisResult is one output artifact produced by an analysis task.
type AnalysisResult struct {
	ID          int64  `json:"id"`
	TaskID      int64  `json:"taskId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BucketName  string `json:"bucketName"`
	ObjectKey   string `json:"objectKey"`
	ResultType  string `json:"resultType"`
	Metrics     string `json:"metrics"`
	CreateTime  string `json:"createTime"`
	UpdateTime  string `json:"updateTime"`
}

// ResultsByTask lists every result produced by one task.
func (c *Client) ResultsByTask(ctx context.Context, taskID int64) ([]AnalysisResult, error) {
	var results []AnalysisResult
	if err := c.business.get(ctx, fmt.Sprintf("/results/task/%d", taskID), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Result fetches one result by id.
func (c *Client) Result(ctx context.Context, id int64) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := c.business.get(ctx, fmt.Sprintf("/results/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteResult removes a result record.
func (c *Client) DeleteResult(ctx context.Context, id int64) error {
	return c.business.delete(ctx, fmt.Sprintf("/results/%d", id), nil)
}

// ResultFileURL resolves the public address of a result artifact.
func (c *Client) ResultFileURL(ctx context.Context, bucket, objectKey string) string {
	return c.ResolveFileURL(ctx, bucket, objectKey)
}

// DeleteResultFile removes a stored result artifact.
func (c *Client) DeleteResultFile(ctx context.Context, bucket, objectKey string) error {
	return c.DeleteFile(ctx, bucket, objectKey)
}
