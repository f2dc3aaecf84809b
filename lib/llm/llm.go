package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jasidev/trendpost/lib/logger"
	"github.com/jasidev/trendpost/lib/types"
)

// Generator writes posts with a chat-completion model in JSON mode.
type Generator struct {
	client       *openai.Client
	model        string
	persona      string
	maxPostChars int
	log          *logger.Logger
}

func NewGenerator(apiKey, model, persona string, maxPostChars int, log *logger.Logger) *Generator {
	return &Generator{
		client:       openai.NewClient(apiKey),
		model:        model,
		persona:      persona,
		maxPostChars: maxPostChars,
		log:          log,
	}
}

func (g *Generator) fetchAnswerJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type postBox struct {
	Post  string  `json:"post"`
	Error *string `json:"error"`
}

func (g *Generator) buildPrompt(topic types.Topic) string {
	prompt := "The json API endpoint returns a {post, error} object, like {post: \"...\", error: null}. " +
		"The post field contains, as a string, a social-network post about the trending topic below, " +
		"written in the persona described next. The post is plain text, at most " +
		fmt.Sprintf("%v", g.maxPostChars) + " characters, with no hashtag spam (two hashtags at most) " +
		"and no preamble like \"Here is a post\".\n\n"
	prompt += "<PERSONA>\n" + g.persona + "\n</PERSONA>\n\n"
	prompt += "<TOPIC>\n" + topic.Title
	if topic.Link != "" {
		prompt += "\n" + topic.Link
	}
	prompt += "\n</TOPIC>\n\n"
	prompt += "The output is as follows (as a reminder, the json API endpoint returns a {post, error} object, " +
		"and sets error to a non-null string only when no reasonable post can be written for the topic):"
	return prompt
}

func parsePost(answerJSON string) (string, error) {
	var box postBox
	if err := json.Unmarshal([]byte(answerJSON), &box); err != nil {
		return "", fmt.Errorf("unmarshalling model answer: %w", err)
	}
	if box.Error != nil && *box.Error != "" {
		return "", fmt.Errorf("model declined topic: %v", *box.Error)
	}
	post := strings.TrimSpace(box.Post)
	if post == "" {
		return "", fmt.Errorf("model returned an empty post")
	}
	return post, nil
}

// Generate writes a post for the selected topic.
func (g *Generator) Generate(ctx context.Context, topic types.Topic) (string, error) {
	answerJSON, err := g.fetchAnswerJSON(ctx, g.buildPrompt(topic))
	if err != nil {
		return "", err
	}
	post, err := parsePost(answerJSON)
	if err != nil {
		g.log.Error("bad model answer for topic %q: %v", topic.Title, err)
		return "", err
	}
	if len(post) > g.maxPostChars {
		g.log.Warning("model exceeded the length hint (%v chars), keeping the post anyway", len(post))
	}
	return post, nil
}
