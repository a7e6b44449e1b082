package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/user/hanashi/internal/model"
	"github.com/user/hanashi/internal/utils"
	"golang.org/x/sync/singleflight"
)

const (
	bookCacheTTL    = 5 * time.Minute
	searchCacheSize = 200
)

// Client HanashiNoMori 后端 REST 客户端
// 无状态的请求/响应映射层，所有方法并发安全
type Client struct {
	baseURL    string
	httpClient *http.Client

	bookCache   *gocache.Cache                   // 按 ID 缓存单本图书
	searchCache *utils.SearchCache[[]model.Book] // 搜索/分类结果缓存
	group       singleflight.Group               // 合并并发的按 ID 查询
}

// NewClient 创建客户端，timeout 同时作用于连接和读写
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		bookCache:   gocache.New(bookCacheTTL, 10*time.Minute),
		searchCache: utils.NewSearchCache[[]model.Book](searchCacheSize, bookCacheTTL),
	}
}

// BaseURL 后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON 发送请求并把响应体解析进 target
// 约定：传输失败包装为「连接错误」；响应体无法解析且状态码异常时报状态码
func (c *Client) doJSON(method, path string, query url.Values, body, target interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("连接错误: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("连接错误: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("连接错误: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("连接错误: %w", err)
	}

	// 失败状态码的响应体通常也带 {success,message} 包装，
	// 先尝试解析让调用方拿到服务端消息
	if err := json.Unmarshal(data, target); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
		}
		return fmt.Errorf("连接错误: %w", err)
	}
	return nil
}

func (c *Client) getJSON(path string, query url.Values, target interface{}) error {
	return c.doJSON(http.MethodGet, path, query, nil, target)
}

func (c *Client) postJSON(path string, query url.Values, body, target interface{}) error {
	return c.doJSON(http.MethodPost, path, query, body, target)
}

func (c *Client) putJSON(path string, query url.Values, body, target interface{}) error {
	return c.doJSON(http.MethodPut, path, query, body, target)
}

func (c *Client) deleteJSON(path string, query url.Values, target interface{}) error {
	return c.doJSON(http.MethodDelete, path, query, nil, target)
}

// adminQuery 管理端接口统一携带 adminUserId 参数
func adminQuery(adminUserID int64) url.Values {
	return url.Values{"adminUserId": []string{fmt.Sprintf("%d", adminUserID)}}
}
