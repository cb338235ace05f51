package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanabira/hanachat/internal/catalog"
	"github.com/hanabira/hanachat/internal/chatapi"
	"github.com/hanabira/hanachat/internal/config"
	"github.com/hanabira/hanachat/internal/conversation"
	"github.com/hanabira/hanachat/internal/devcmd"
	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/economy"
	"github.com/hanabira/hanachat/internal/logger"
	"github.com/hanabira/hanachat/internal/relationship"
	"github.com/hanabira/hanachat/internal/scheduler"
	"github.com/hanabira/hanachat/internal/session"
	"github.com/hanabira/hanachat/internal/store"
)

const serviceName = "hanachat"

var version = "dev"

type action int

const (
	actionQuit action = iota
	actionRestart
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration failed: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, serviceName, version, cfg.Environment, false))
	ctx := logger.WithSessionID(context.Background(), logger.GenerateSessionID())

	// Open the local state store
	kv, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Error("open store failed", "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	// Optional metrics endpoint for development
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("metrics endpoint failed", "addr", addr, "error", err)
			}
		}()
		logger.Info("metrics endpoint enabled", "addr", addr)
	}

	client := chatapi.NewClient(cfg.ChatAPIURL, cfg.HTTPTimeout)
	stdin := bufio.NewReader(os.Stdin)

	for {
		if runSession(ctx, kv, client, stdin) == actionQuit {
			return
		}
	}
}

// runSession drives one session from startup or onboarding through the
// chat loop. It returns actionRestart after a "start over" reset so main
// can onboard the next user against the now-empty store.
func runSession(ctx context.Context, kv store.KV, client *chatapi.Client, stdin *bufio.Reader) action {
	sched := scheduler.New()
	defer sched.Stop()

	confirm := func(prompt string) bool {
		fmt.Printf("%s [y/N] ", prompt)
		line, _ := stdin.ReadString('\n')
		line = strings.ToLower(strings.TrimSpace(line))
		return line == "y" || line == "yes"
	}

	sessions := session.NewManager(kv, sched, client, confirm)

	snap, resumed, welcome, err := sessions.Startup(ctx)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return actionQuit
	}
	if !resumed {
		welcome, err = onboard(ctx, sessions, stdin)
		if err != nil {
			logger.Error("onboarding failed", "error", err)
			return actionQuit
		}
	}

	character, _ := domain.CharacterByID(sessions.Session().Character)
	rel := relationship.NewEngine(kv, character, snap.Affection, snap.Override)
	eco := economy.NewEngine(kv, snap.Economy)
	inv := snap.Inventory
	dev := &devcmd.Handler{Relationship: rel, Economy: eco, Inventory: &inv, KV: kv}

	orch := conversation.New(client, sessions, rel, eco, dev, sched)
	orch.SetEmitter(printMessage)

	restarted := false
	sessions.SetResetHook(func() {
		rel.Reset()
		eco.Reset()
		orch.ResetTranscript()
		restarted = true
	})

	printMessage(welcome)
	if !resumed {
		orch.GrantFirstLoginBonus(ctx)
		showNotification(orch)
	}

	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return actionQuit
		}
		input := strings.TrimSpace(line)

		switch {
		case input == "":
			continue

		case input == "/quit" || input == "/bye":
			farewell, ended := sessions.EndConversation(ctx)
			if !ended {
				continue
			}
			printMessage(farewell)
			// Let the delayed teardown erase state before the process exits.
			time.Sleep(session.TeardownDelay + 200*time.Millisecond)
			return actionQuit

		case input == "/new":
			if sessions.NewUser(ctx) && restarted {
				return actionRestart
			}

		case input == "/shop":
			printShop(&inv)

		case strings.HasPrefix(input, "/buy "):
			itemID := strings.TrimSpace(strings.TrimPrefix(input, "/buy "))
			if err := orch.Purchase(ctx, itemID, &inv); err != nil {
				fmt.Printf("  ! %v\n", err)
				continue
			}
			showNotification(orch)

		case input == "/status":
			printStatus(os.Stdout, sessions, rel, eco, &inv)

		case input == "/help":
			printHelp()

		default:
			if err := orch.Send(ctx, input); err != nil {
				fmt.Printf("  ! %v\n", err)
				continue
			}
			for _, m := range newMessages(orch, input) {
				printMessage(m)
			}
			showNotification(orch)
		}
	}
}

// onboard collects the user name and character choice for a fresh store.
func onboard(ctx context.Context, sessions *session.Manager, stdin *bufio.Reader) (domain.Message, error) {
	fmt.Print("What should I call you? ")
	name, err := stdin.ReadString('\n')
	if err != nil {
		return domain.Message{}, err
	}
	name = strings.TrimSpace(name)

	roster := domain.Characters()
	fmt.Println("Who would you like to talk to?")
	for i, c := range roster {
		fmt.Printf("  %d. %s\n", i+1, c.DisplayName)
	}

	for {
		fmt.Print("Pick a number: ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return domain.Message{}, err
		}
		idx := strings.TrimSpace(line)
		for i, c := range roster {
			if idx == fmt.Sprintf("%d", i+1) {
				return sessions.Begin(ctx, name, c.ID)
			}
		}
		fmt.Println("That's not on the list.")
	}
}

// newMessages returns the transcript entries appended after the user's
// own line, so a round's reply and any immediate event lines print once.
func newMessages(orch *conversation.Orchestrator, input string) []domain.Message {
	transcript := orch.Transcript()
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Sender == domain.SenderUser && transcript[i].Text == input {
			return transcript[i+1:]
		}
	}
	return nil
}

func printMessage(m domain.Message) {
	switch m.Sender {
	case domain.SenderSystem:
		fmt.Printf("  -- %s\n", m.Text)
	case domain.SenderBot:
		fmt.Printf("  %s\n", m.Text)
	default:
		fmt.Printf("  you: %s\n", m.Text)
	}
}

func showNotification(orch *conversation.Orchestrator) {
	n, visible := orch.Notification()
	if !visible {
		return
	}
	switch n.Kind {
	case conversation.NotificationAffection:
		fmt.Printf("  -- affection %+d, +%d coins\n", n.AffectionDelta, n.Coins)
	default:
		fmt.Printf("  -- +%d coins\n", n.Coins)
	}
}

func printShop(inv *domain.Inventory) {
	fmt.Println("  shop:")
	for _, item := range catalog.Items() {
		marker := " "
		if item.Kind == domain.ItemKindTheme && inv.OwnedThemeIDs[item.ID] {
			marker = "*"
		}
		fmt.Printf("  %s %-18s %4d coins  %s\n", marker, item.ID, item.Price, item.Description)
	}
	fmt.Println("  /buy <id> to purchase, * = owned")
}

func printStatus(w io.Writer, sessions *session.Manager, rel *relationship.Engine, eco *economy.Engine, inv *domain.Inventory) {
	affection := rel.Affection()
	stage := relationship.ClassifyStage(affection.Level)
	emotion := rel.Emotion()
	state := eco.State()

	fmt.Fprintf(w, "  %s & %s\n", sessions.Session().UserName, rel.Character().DisplayName)
	fmt.Fprintf(w, "  affection: %d (%s, %d%%)  %s %s\n",
		affection.Level, stage,
		relationship.ProgressPercent(affection.Level), emotion.Glyph, emotion.Label)
	fmt.Fprintf(w, "  coins: %d (lifetime %d)\n", state.Coins, state.LifetimeCoins)
	if booster, active := eco.ActiveBooster(); active {
		fmt.Fprintf(w, "  booster: %s, %ds left\n", booster.ItemID, booster.RemainingMs/1000)
	}
	fmt.Fprintf(w, "  theme: %s\n", inv.ActiveThemeID)
	if rel.Override().Enabled {
		fmt.Fprintln(w, "  developer override active")
	}
}

func printHelp() {
	fmt.Println("  /shop /buy <id> /status /new /bye /dev help")
}
