// Package gemini 封装 Google Gemini：既可作为带 Google Search grounding 的检索服务，
// 也可作为 eino ChatModel 供 LLM 分析阶段使用
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

// DefaultModel 默认模型
const DefaultModel = "gemini-2.5-flash"

// ErrNoContent 模型未返回内容
var ErrNoContent = errors.New("no content generated")

// generator 抽象 genai.Models，便于测试替换
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client Gemini 客户端
type Client struct {
	models       generator
	model        string
	systemPrompt string
}

var (
	_ search.Searcher     = (*Client)(nil)
	_ model.BaseChatModel = (*Client)(nil)
)

// NewClient 创建 Gemini 客户端，systemPrompt 仅用于检索调用
func NewClient(ctx context.Context, apiKey, modelName, systemPrompt string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newClient(c.Models, modelName, systemPrompt), nil
}

func newClient(g generator, modelName, systemPrompt string) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Client{models: g, model: modelName, systemPrompt: systemPrompt}
}

// Search 使用 Google Search grounding 回答查询，引用来源作为结果返回
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	if c.systemPrompt != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: c.systemPrompt}}}
	}

	result, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.Query), config)
	if err != nil {
		return nil, fmt.Errorf("gemini grounded search failed: %w", err)
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return nil, ErrNoContent
	}

	resp := &search.Response{Answer: answer}
	if len(result.Candidates) > 0 && result.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range result.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			resp.Results = append(resp.Results, search.Result{
				Title: chunk.Web.Title,
				URL:   chunk.Web.URI,
			})
			if req.MaxResults > 0 && len(resp.Results) >= req.MaxResults {
				break
			}
		}
	}
	return resp, nil
}

// Generate 实现 model.BaseChatModel，system 消息转换为 SystemInstruction
func (c *Client) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	o := model.GetCommonOptions(&model.Options{}, opts...)

	config := &genai.GenerateContentConfig{Temperature: o.Temperature}
	if o.MaxTokens != nil {
		config.MaxOutputTokens = int32(*o.MaxTokens)
	}
	modelName := c.model
	if o.Model != nil && *o.Model != "" {
		modelName = *o.Model
	}

	var system []string
	contents := make([]*genai.Content, 0, len(input))
	for _, m := range input {
		switch m.Role {
		case schema.System:
			system = append(system, m.Content)
		case schema.Assistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}}}
	}

	result, err := c.models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	text := result.Text()
	if text == "" {
		return nil, ErrNoContent
	}
	return &schema.Message{Role: schema.Assistant, Content: text}, nil
}

// Stream 不支持真正的流式输出，一次性返回完整结果
func (c *Client) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := c.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}
