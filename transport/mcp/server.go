package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
)

// MaxTicksPerCall bounds the tick tool's count argument
const MaxTicksPerCall = 100

// Server exposes the game service as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
	version   string
}

// NewServer creates an MCP server backed by the game service
func NewServer(svc service.GameService, version string) *Server {
	s := &Server{
		service: svc,
		version: version,
	}

	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Blockfall",
		s.version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Blockfall - MCP Interface

A falling-block puzzle. Pieces drop into a well; complete rows clear and score points.
Gravity does not run on its own here: call tick to let the active piece fall one row.

AVAILABLE TOOLS:
- create_session: Start a new game (optional ruleset)
- list_sessions: List all active sessions
- game_state: Show the board, column heights, next piece and counters
- command: left, right, down, rotate, pause or restart
- tick: Apply one or more gravity steps
- list_rulesets: List available rulesets
- game_instructions: Full rules and scoring`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	sessionIDProp := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create and start a new game session with optional ruleset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ruleset": map[string]interface{}{
					"type":        "string",
					"description": "Ruleset ID to use (optional, see list_rulesets)",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, next piece, score, lines and level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	commands := make([]string, 0, len(service.Commands()))
	for _, c := range service.Commands() {
		commands = append(commands, string(c))
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Send a player command to the active piece or the game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"command": map[string]interface{}{
					"type":        "string",
					"enum":        commands,
					"description": "Command to apply",
				},
				"repeat": map[string]interface{}{
					"type":        "integer",
					"description": "Apply the command this many times, stopping at the first refusal (default 1)",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, s.handleCommand)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Apply gravity: the active piece falls one row, or locks if it cannot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"count": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Number of gravity steps (1-%d, default 1). Stops early on lock or game over.", MaxTicksPerCall),
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleTick)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rulesets",
		Description: "List available rulesets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListRulesets)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules, controls and scoring",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the MCP protocol over stdin/stdout until stdin closes
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool handlers

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ruleset := cast.ToString(args["ruleset"])

	info, err := s.service.CreateSession(ctx, ruleset)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nRuleset: %s\n\n%s", info.ID, info.RulesetName, formatGameState(info.GameState))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		fmt.Fprintf(&b, "- %s (Ruleset: %s, Phase: %s, Score: %d, Created: %s)\n",
			info.ID, info.RulesetName, info.Phase, info.GameState.Score, info.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	cmd, err := service.ParseCommand(cast.ToString(args["command"]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	repeat := 1
	if raw, ok := args["repeat"]; ok {
		repeat, err = cast.ToIntE(raw)
		if err != nil || repeat < 1 || repeat > MaxTicksPerCall {
			return mcp.NewToolResultError(fmt.Sprintf("repeat must be an integer between 1 and %d", MaxTicksPerCall)), nil
		}
	}

	var last *service.CommandResult
	var events []service.GameEvent
	applied := 0
	for i := 0; i < repeat; i++ {
		last, err = s.service.Command(ctx, sessionID, cmd)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		events = append(events, last.Events...)
		if !last.Success {
			break
		}
		applied++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Command: %s (applied %d/%d)\n", cmd, applied, repeat)
	b.WriteString(formatEvents(events))
	b.WriteString("\n")
	b.WriteString(formatGameState(last.GameState))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	count := 1
	if raw, ok := args["count"]; ok {
		var err error
		count, err = cast.ToIntE(raw)
		if err != nil || count < 1 || count > MaxTicksPerCall {
			return mcp.NewToolResultError(fmt.Sprintf("count must be an integer between 1 and %d", MaxTicksPerCall)), nil
		}
	}

	var last *service.CommandResult
	var events []service.GameEvent
	ticks := 0
	for i := 0; i < count; i++ {
		res, err := s.service.Tick(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		last = res
		if !res.Success {
			break
		}
		ticks++
		if res.Tick.Locked {
			events = append(events, res.Events...)
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ticks applied: %d/%d\n", ticks, count)
	if ticks == 0 {
		fmt.Fprintf(&b, "Gravity is not running (phase: %s)\n", last.Phase)
	}
	b.WriteString(formatEvents(events))
	b.WriteString("\n")
	b.WriteString(formatGameState(last.GameState))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListRulesets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rulesets, err := s.service.ListRulesets(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Rulesets:\n\n")
	for _, info := range rulesets {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Board: %dx%d\n\n",
			info.RulesetID, info.Name, info.Description, info.Width, info.Height)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Blockfall - Complete Instructions

OBJECTIVE:
Keep the well from filling up. Complete horizontal rows to clear them and score.

PIECES:
Seven pieces (I, O, T, S, Z, J, L) spawn centered at the top. The next piece is always shown.
I and O do not rotate; S and Z have two orientations; T, J and L have four.

COMMANDS:
• left / right: shift the active piece one column
• down: shift the active piece one row (does not lock it)
• rotate: turn the piece clockwise if the new orientation fits where it is (no wall kicks)
• pause: toggle pause; while paused every other move is refused
• restart: start a fresh game at any time

GRAVITY:
Each tick moves the active piece down one row. When it cannot fall it locks into the board,
full rows are cleared and the next piece spawns. If the new piece does not fit, the game is over.

SCORING (classic ruleset):
• 1 line: 100 x level
• 2 lines: 300 x level
• 3 lines: 500 x level
• 4 lines: 800 x level
The level used is the one before the clear. Level = lines / 10 + 1. Gravity starts at 1000ms and
gets 50ms faster per level down to 50ms.

BOARD LEGEND:
• . empty cell
• I O T S Z J L locked blocks
• i o t s z j l the falling piece
`

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return ""
	}

	var b strings.Builder
	width := state.Board.Width()

	b.WriteString("+" + strings.Repeat("-", width) + "+\n")
	for _, row := range engine.RenderRows(state) {
		b.WriteString("|" + row + "|\n")
	}
	b.WriteString("+" + strings.Repeat("-", width) + "+\n")

	fmt.Fprintf(&b, "Score: %d  Lines: %d  Level: %d  Gravity: %dms\n",
		state.Score, state.Lines, state.Level, state.GravityIntervalMs)
	fmt.Fprintf(&b, "Heights: %s\n", strings.Trim(fmt.Sprint(engine.ColumnHeights(state.Board)), "[]"))

	if state.Active != nil {
		fmt.Fprintf(&b, "Active: %s at (%d,%d) rotation %d\n",
			state.Active.Kind, state.Active.Pos.X, state.Active.Pos.Y, state.Active.Rotation)
	}
	if state.Next != nil {
		b.WriteString("Next:\n")
		for _, line := range engine.RenderPreview(state.Next) {
			b.WriteString("  " + line + "\n")
		}
	}

	switch {
	case state.GameOver:
		b.WriteString("Status: GAME OVER\n")
	case state.Paused:
		b.WriteString("Status: PAUSED\n")
	case state.Running:
		b.WriteString("Status: running\n")
	default:
		b.WriteString("Status: not started\n")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}

	return b.String()
}

func formatEvents(events []service.GameEvent) string {
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Events:\n")
	for _, ev := range events {
		fmt.Fprintf(&b, "  [%s] %s\n", ev.Type, ev.Message)
	}
	return b.String()
}
