package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/config"
	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/view"
)

var (
	// sessionMu serializes tool calls; activeSession is the singleton game
	// session (one per stdio process).
	sessionMu     sync.Mutex
	activeSession *GameSession

	baseConfig = config.Default()
	logger     = zap.NewNop()
)

// Configure sets the configuration and logger used by start_game.
func Configure(cfg *config.Config, l *zap.Logger) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	baseConfig = cfg
	if l != nil {
		logger = l
	}
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(drawCardTool(), handleDrawCard)
	s.AddTool(playAttackTool(), handlePlayAttack)
	s.AddTool(playUtilityTool(), handlePlayUtility)
	s.AddTool(playDefenseTool(), handlePlayDefense)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(resetGameTool(), handleResetGame)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(listCardsTool(), handleListCards)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new BREACH game against the scripted opponent. Each side has 4 servers at 5 SPV; "+
			"destroy all of the opponent's servers to win. You get 3 moves per turn: drawing or playing a card costs one move. "+
			"Returns the game state once it is your turn."),
		mcp.WithNumber("seed", mcp.Description("Optional RNG seed for the shuffle (0 = random)")),
	)
}

func drawCardTool() mcp.Tool {
	return mcp.NewTool("draw_card",
		mcp.WithDescription("Draw the top card of the shared deck into your hand (hand limit 7). Costs one move."),
	)
}

func playAttackTool() mcp.Tool {
	return mcp.NewTool("play_attack",
		mcp.WithDescription("Play an attack card from your hand against one of the opponent's servers. "+
			"A defense card on that server absorbs the hit; only damage beyond its remaining health reaches the server, "+
			"and only when the defense is destroyed. Costs one move."),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
		mcp.WithNumber("slot", mcp.Required(), mcp.Description("0-based opponent server slot (0-3)")),
	)
}

func playUtilityTool() mcp.Tool {
	return mcp.NewTool("play_utility",
		mcp.WithDescription("Play a utility card from your hand to heal one of your own servers (max 5 SPV). "+
			"Destroyed servers cannot be healed. Costs one move."),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
		mcp.WithNumber("slot", mcp.Required(), mcp.Description("0-based own server slot (0-3)")),
	)
}

func playDefenseTool() mcp.Tool {
	return mcp.NewTool("play_defense",
		mcp.WithDescription("Place a defense card from your hand over one of your own live servers with no defense yet. Costs one move."),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
		mcp.WithNumber("slot", mcp.Required(), mcp.Description("0-based own server slot (0-3)")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn; unused moves are lost. The opponent then plays its turn and the response shows what it did."),
	)
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Abandon the current game (or a finished one) and deal a new one."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state and events since the last call without submitting anything. Read-only."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card category with its kind and power. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Use reset_game to deal a new one."), nil
	}

	cfg := *baseConfig
	if seed := request.GetInt("seed", 0); seed != 0 {
		cfg.Game.Seed = int64(seed)
		cfg.Opponent.Seed = int64(seed)
	}

	sess, err := NewGameSession(&cfg, logger)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleDrawCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		return submitAction(sess, game.DrawAction(sess.human))
	})
}

func handlePlayAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		card, err := sess.handCard(request.GetInt("hand_index", -1))
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid hand_index: %v", err), nil
		}
		slot := request.GetInt("slot", -1)
		return submitAction(sess, game.AttackAction(card, sess.human.Opponent(), slot))
	})
}

func handlePlayUtility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		card, err := sess.handCard(request.GetInt("hand_index", -1))
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid hand_index: %v", err), nil
		}
		slot := request.GetInt("slot", -1)
		return submitAction(sess, game.UtilityAction(card, sess.human, slot))
	})
}

func handlePlayDefense(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		card, err := sess.handCard(request.GetInt("hand_index", -1))
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid hand_index: %v", err), nil
		}
		return submitAction(sess, game.DefenseAction(card, request.GetInt("slot", -1)))
	})
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		return submitAction(sess, game.EndTurnAction())
	})
}

func handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		resp, err := sess.restart()
		if err != nil {
			return mcp.NewToolResultErrorf("Reset failed: %v", err), nil
		}
		return mcp.NewToolResultText(respondJSON(resp)), nil
	})
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(func(sess *GameSession) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(respondJSON(sess.stateResponse())), nil
	})
}

func handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(view.CatalogView())), nil
}

// withSession runs fn against the active session while holding sessionMu.
func withSession(fn func(sess *GameSession) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return fn(activeSession)
}

func submitAction(sess *GameSession, a game.Action) (*mcp.CallToolResult, error) {
	if sess.currentPending != nil && sess.currentPending.Type == DecisionGameOver {
		return mcp.NewToolResultError("The game is over. Use reset_game to play again."), nil
	}
	resp, err := sess.submit(a)
	if err != nil {
		return mcp.NewToolResultErrorf("Error submitting %s: %v", a.Type, err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
