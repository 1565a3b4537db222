package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, m string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = m, contents, config
	return f.resp, f.err
}

func textResponse(text string, sources ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	cand := &genai.Candidate{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}}
	if len(sources) > 0 {
		cand.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: sources}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{cand}}
}

func TestClient_SearchGrounded(t *testing.T) {
	fake := &fakeGenerator{resp: textResponse("Apollo was founded in 1990.",
		&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: "apollo.com", URI: "https://www.apollo.com"}},
		&genai.GroundingChunk{},
	)}
	c := newClient(fake, "", "be precise")

	resp, err := c.Search(context.Background(), &search.Request{Query: "Apollo founded year"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, fake.model)
	require.Len(t, fake.config.Tools, 1)
	assert.NotNil(t, fake.config.Tools[0].GoogleSearch)
	require.NotNil(t, fake.config.SystemInstruction)
	assert.Equal(t, "be precise", fake.config.SystemInstruction.Parts[0].Text)

	assert.Equal(t, "Apollo was founded in 1990.", resp.Answer)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "https://www.apollo.com", resp.Results[0].URL)
}

func TestClient_SearchEmpty(t *testing.T) {
	c := newClient(&fakeGenerator{resp: textResponse("  ")}, "m", "")
	_, err := c.Search(context.Background(), &search.Request{Query: "q"})
	assert.ErrorIs(t, err, ErrNoContent)

	c = newClient(&fakeGenerator{err: errors.New("quota")}, "m", "")
	_, err = c.Search(context.Background(), &search.Request{Query: "q"})
	assert.Error(t, err)
}

func TestClient_Generate(t *testing.T) {
	fake := &fakeGenerator{resp: textResponse(`{"fundName":"KKR"}`)}
	c := newClient(fake, "gemini-test", "")

	msg, err := c.Generate(context.Background(), []*schema.Message{
		{Role: schema.System, Content: "return JSON"},
		{Role: schema.User, Content: "research data"},
	}, model.WithMaxTokens(3000), model.WithTemperature(0.1))
	require.NoError(t, err)

	assert.Equal(t, `{"fundName":"KKR"}`, msg.Content)
	assert.Equal(t, "gemini-test", fake.model)
	assert.Equal(t, int32(3000), fake.config.MaxOutputTokens)
	require.NotNil(t, fake.config.Temperature)
	assert.Equal(t, "return JSON", fake.config.SystemInstruction.Parts[0].Text)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "user", fake.contents[0].Role)
}

func TestClient_Stream(t *testing.T) {
	c := newClient(&fakeGenerator{resp: textResponse("done")}, "m", "")
	sr, err := c.Stream(context.Background(), []*schema.Message{{Role: schema.User, Content: "hi"}})
	require.NoError(t, err)
	defer sr.Close()

	msg, err := sr.Recv()
	require.NoError(t, err)
	assert.Equal(t, "done", msg.Content)
}
