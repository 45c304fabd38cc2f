package rsclient

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// ClassificationTask is one single-image classification run.
type ClassificationTask struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	UserID     int64    `json:"userId"`
	Bucket     string   `json:"bucket"`
	ObjectKey  string   `json:"objectKey"`
	ClassID    *int64   `json:"classId"`
	ClassName  *string  `json:"className"`
	Confidence *float64 `json:"confidence"`
	Status     int      `json:"status"`
	ErrorMsg   string   `json:"errorMsg"`
	CreateTime string   `json:"createTime"`
	UpdateTime string   `json:"updateTime"`
}

// ClassificationTaskCreate submits an image for classification. ModelID
// zero lets the backend pick the default model.
type ClassificationTaskCreate struct {
	Name     string
	ModelID  int64
	Filename string
	Image    io.Reader
}

// CreateClassificationTask uploads an image and starts classifying it.
func (c *Client) CreateClassificationTask(ctx context.Context, create ClassificationTaskCreate) (*ClassificationTask, error) {
	fields := map[string]string{"name": create.Name}
	if create.ModelID != 0 {
		fields["modelId"] = strconv.FormatInt(create.ModelID, 10)
	}
	body, contentType, err := multipartForm("file", create.Filename, create.Image, fields)
	if err != nil {
		return nil, err
	}

	var task ClassificationTask
	if err := c.business.postMultipart(ctx, "/classification", body, contentType, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ClassificationTasks pages through the classification runs. The
// endpoint uses pageNum/pageSize parameter names, unlike the rest of
// the business API.
func (c *Client) ClassificationTasks(ctx context.Context, q PageQuery) (*Page[ClassificationTask], error) {
	query := url.Values{}
	if q.Current > 0 {
		query.Set("pageNum", strconv.Itoa(q.Current))
	}
	if q.Size > 0 {
		query.Set("pageSize", strconv.Itoa(q.Size))
	}
	var page Page[ClassificationTask]
	if err := c.business.get(ctx, "/classification/page", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ClassificationTask fetches one classification run by id.
func (c *Client) ClassificationTask(ctx context.Context, id int64) (*ClassificationTask, error) {
	var task ClassificationTask
	if err := c.business.get(ctx, fmt.Sprintf("/classification/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteClassificationTask removes a classification run.
func (c *Client) DeleteClassificationTask(ctx context.Context, id int64) error {
	return c.business.delete(ctx, fmt.Sprintf("/classification/%d", id), nil)
}
