package chatsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

type fakeChatModel struct {
	reply    string
	err      error
	messages []*schema.Message
	options  *model.Options
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.messages = input
	f.options = model.GetCommonOptions(&model.Options{}, opts...)
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.reply}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func TestClient_Search(t *testing.T) {
	fake := &fakeChatModel{reply: "  Blackstone Credit manages $300bn.  "}
	c := NewClient(fake, "", 0, 0.1)

	resp, err := c.Search(context.Background(), &search.Request{Query: "Blackstone AUM"})
	require.NoError(t, err)
	assert.Equal(t, "Blackstone Credit manages $300bn.", resp.Answer)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, schema.System, fake.messages[0].Role)
	assert.Equal(t, DefaultSystemPrompt, fake.messages[0].Content)
	assert.Equal(t, "Blackstone AUM", fake.messages[1].Content)

	require.NotNil(t, fake.options.MaxTokens)
	assert.Equal(t, 4000, *fake.options.MaxTokens)
	require.NotNil(t, fake.options.Temperature)
	assert.InDelta(t, 0.1, *fake.options.Temperature, 1e-6)
}

func TestClient_SearchErrors(t *testing.T) {
	_, err := NewClient(&fakeChatModel{err: errors.New("401")}, "sys", 100, 0).
		Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)

	_, err = NewClient(&fakeChatModel{reply: "   "}, "sys", 100, 0).
		Search(context.Background(), &search.Request{Query: "q"})
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}
