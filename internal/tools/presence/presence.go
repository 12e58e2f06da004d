// Package presence implements the MCP tools that query a Discord
// user's presence through the Lanyard API.
//
// Each tool runs the same pipeline: validate the user ID, issue one
// bounded fetch, render the payload. Every mapped failure becomes a
// marker-prefixed text result; the MCP call itself only fails on
// unanticipated internal errors.
package presence

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"lanyard-mcp-go/internal/format"
	"lanyard-mcp-go/internal/lanyard"
)

// stringArg extracts a string argument from a tool request, returning
// the empty string if the key is missing or not a string.
func stringArg(req mcp.CallToolRequest, key string) string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return ""
	}
	return v
}

// userIDParam builds the shared single-parameter schema for the three tools.
func userIDParam() mcp.ToolOption {
	return mcp.WithString("user_id",
		mcp.Description("Discord user ID (17-20 digit snowflake)"),
		mcp.DefaultString(""),
	)
}

// invalidIDText renders a rejected user ID as a tool result string.
func invalidIDText(err error) string {
	return fmt.Sprintf("❌ Invalid user ID: %s", err.Error())
}

// fetchErrorText maps a fetch failure to its user-facing sentence.
// The full presence tool adds a hint to the not-found message; the
// narrower tools do not.
func fetchErrorText(err error, userID string, notFoundHint bool) string {
	var apiErr *lanyard.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case lanyard.ErrNotFound:
			if notFoundHint {
				return fmt.Sprintf("❌ User not found: %s (Discord user may not be using Lanyard)", userID)
			}
			return fmt.Sprintf("❌ User not found: %s", userID)
		case lanyard.ErrRateLimited:
			return "❌ Rate limit exceeded. Please try again later."
		case lanyard.ErrHTTPStatus:
			return fmt.Sprintf("❌ API Error: HTTP %d", apiErr.StatusCode)
		case lanyard.ErrTimeout:
			return fmt.Sprintf("⏱️ Request timed out while fetching user %s", userID)
		case lanyard.ErrUnsuccessful:
			return fmt.Sprintf("❌ API returned unsuccessful response for user %s", userID)
		}
	}
	return fmt.Sprintf("❌ Error: %s", err.Error())
}

// PresenceTool returns the full presence report for a user.
type PresenceTool struct {
	client *lanyard.Client
	logger zerolog.Logger
}

// NewPresenceTool creates the get_user_presence tool.
func NewPresenceTool(client *lanyard.Client, logger zerolog.Logger) *PresenceTool {
	return &PresenceTool{
		client: client,
		logger: logger.With().Str("tool", "get_user_presence").Logger(),
	}
}

// Name returns the name of the tool.
func (t *PresenceTool) Name() string {
	return "get_user_presence"
}

// Definition returns the tool's MCP schema.
func (t *PresenceTool) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Get Discord presence information for a user via Lanyard API - provide Discord user ID."),
		userIDParam(),
	)
}

// Handle executes the tool.
func (t *PresenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := stringArg(req, "user_id")
	t.logger.Info().Str("user_id", userID).Msg("Fetching presence")

	clean, err := lanyard.ValidateUserID(userID)
	if err != nil {
		return mcp.NewToolResultText(invalidIDText(err)), nil
	}

	data, err := t.client.GetPresence(ctx, clean)
	if err != nil {
		t.logger.Error().Err(err).Str("user_id", clean).Msg("Error fetching presence")
		return mcp.NewToolResultText(fetchErrorText(err, clean, true)), nil
	}

	return mcp.NewToolResultText(format.Presence(data, clean)), nil
}

// SpotifyTool returns only the Spotify listening report for a user.
type SpotifyTool struct {
	client *lanyard.Client
	logger zerolog.Logger
}

// NewSpotifyTool creates the get_user_spotify tool.
func NewSpotifyTool(client *lanyard.Client, logger zerolog.Logger) *SpotifyTool {
	return &SpotifyTool{
		client: client,
		logger: logger.With().Str("tool", "get_user_spotify").Logger(),
	}
}

// Name returns the name of the tool.
func (t *SpotifyTool) Name() string {
	return "get_user_spotify"
}

// Definition returns the tool's MCP schema.
func (t *SpotifyTool) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Get Spotify listening information for a Discord user via Lanyard - provide Discord user ID."),
		userIDParam(),
	)
}

// Handle executes the tool.
func (t *SpotifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := stringArg(req, "user_id")
	t.logger.Info().Str("user_id", userID).Msg("Fetching Spotify data")

	clean, err := lanyard.ValidateUserID(userID)
	if err != nil {
		return mcp.NewToolResultText(invalidIDText(err)), nil
	}

	data, err := t.client.GetPresence(ctx, clean)
	if err != nil {
		t.logger.Error().Err(err).Str("user_id", clean).Msg("Error fetching Spotify data")
		return mcp.NewToolResultText(fetchErrorText(err, clean, false)), nil
	}

	return mcp.NewToolResultText(format.SpotifyStatus(data)), nil
}

// KVTool returns only the custom KV report for a user.
type KVTool struct {
	client *lanyard.Client
	logger zerolog.Logger
}

// NewKVTool creates the get_user_kv tool.
func NewKVTool(client *lanyard.Client, logger zerolog.Logger) *KVTool {
	return &KVTool{
		client: client,
		logger: logger.With().Str("tool", "get_user_kv").Logger(),
	}
}

// Name returns the name of the tool.
func (t *KVTool) Name() string {
	return "get_user_kv"
}

// Definition returns the tool's MCP schema.
func (t *KVTool) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Get Lanyard KV (key-value) custom data for a Discord user - provide Discord user ID."),
		userIDParam(),
	)
}

// Handle executes the tool.
func (t *KVTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := stringArg(req, "user_id")
	t.logger.Info().Str("user_id", userID).Msg("Fetching KV data")

	clean, err := lanyard.ValidateUserID(userID)
	if err != nil {
		return mcp.NewToolResultText(invalidIDText(err)), nil
	}

	data, err := t.client.GetPresence(ctx, clean)
	if err != nil {
		t.logger.Error().Err(err).Str("user_id", clean).Msg("Error fetching KV data")
		return mcp.NewToolResultText(fetchErrorText(err, clean, false)), nil
	}

	return mcp.NewToolResultText(format.KVData(data)), nil
}
