package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"stickermissions/internal/app"
	"stickermissions/internal/config"
	"stickermissions/internal/pinpad"
)

const parentTokenEnv = "MISSIONS_PARENT_TOKEN"

type command struct {
	run         func(a *app.App, args []string) error
	usage       string
	parentOnly  bool
	description string
}

var commands = map[string]command{
	"status":      {run: runStatus, usage: "status", description: "Show missions, stickers and the current reward"},
	"board":       {run: runBoard, usage: "board", description: "Show this month's sticker board"},
	"stats":       {run: runStats, usage: "stats", description: "Show completions per mission this month"},
	"archives":    {run: runArchives, usage: "archives", description: "List archived months"},
	"start":       {run: runStart, usage: "start -id <id> [-interval 1s]", description: "Start a mission and run its countdown"},
	"resume":      {run: runResume, usage: "resume [-interval 1s]", description: "Restart the countdown of the active mission"},
	"cancel":      {run: runCancel, usage: "cancel -id <id>", description: "Return the active mission to pending"},
	"complete":    {run: runComplete, usage: "complete -id <id>", description: "Finish the active mission"},
	"warp":        {run: runWarp, usage: "warp -pin <pin>", description: "Finish the active mission now (parent PIN)"},
	"award":       {run: runAward, usage: "award [-type star|heart|rocket|crown|medal]", description: "Place today's sticker"},
	"bonus":       {run: runBonus, usage: "bonus", description: "Spend a bonus sticker on the earliest empty day"},
	"onboard":     {run: runOnboard, usage: "onboard -name <name> [-photo <file>]", description: "Set the child's name the first time"},
	"add":         {run: runAdd, usage: "add -title <title> -minutes <n> [-reward <text>]", parentOnly: true, description: "Add a mission"},
	"delete":      {run: runDelete, usage: "delete -id <id>", parentOnly: true, description: "Delete a mission"},
	"grant-bonus": {run: runGrantBonus, usage: "grant-bonus -n <count>", parentOnly: true, description: "Add bonus stickers"},
	"rollover":    {run: runRollover, usage: "rollover", parentOnly: true, description: "Archive this month and start a new board"},
	"reward":      {run: runReward, usage: "reward [-type currency|text -steps 0:Candy,5:Toy]", parentOnly: true, description: "Show or set reward tiers"},
	"preset":      {run: runPreset, usage: "preset list|save -name <name>|load -id <id>|delete -id <id>", parentOnly: true, description: "Manage mission presets"},
	"profile":     {run: runProfile, usage: "profile -name <name> [-photo <file>]", parentOnly: true, description: "Change the child profile"},
	"pin":         {run: runPIN, usage: "pin -current <pin> -new <pin> -confirm <pin>", description: "Change the parent PIN"},
	"unlock":      {run: runUnlock, usage: "unlock", parentOnly: true, description: "Print a parent token for " + parentTokenEnv},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	a, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open app: %v", err)
	}

	args := os.Args[2:]
	if cmd.parentOnly {
		args, err = authorizeParent(a, args)
		if err != nil {
			a.Close()
			log.Fatalf("Parent access denied: %v", err)
		}
	}

	runErr := cmd.run(a, args)
	if err := a.Close(); err != nil {
		log.Printf("Warning: failed to close database: %v", err)
	}
	if runErr != nil {
		log.Fatalf("%s failed: %v", name, runErr)
	}
}

// authorizeParent unlocks parent mode from a leading -pin flag or the token
// environment variable, and returns the remaining arguments
func authorizeParent(a *app.App, args []string) ([]string, error) {
	if len(args) >= 2 && (args[0] == "-pin" || args[0] == "--pin") {
		return args[2:], a.Unlock(pinpad.TargetParent, args[1])
	}
	if token := os.Getenv(parentTokenEnv); token != "" {
		return args, a.AuthorizeGrant(token)
	}
	return args, fmt.Errorf("pass -pin <pin> first or set %s", parentTokenEnv)
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printUsage() {
	fmt.Println("Sticker Missions")
	fmt.Println()
	fmt.Println("Usage:")
	for _, name := range commandNames() {
		cmd := commands[name]
		usage := cmd.usage
		if cmd.parentOnly {
			first, rest, _ := strings.Cut(usage, " ")
			usage = strings.TrimSpace(first + " [-pin <pin>] " + rest)
		}
		fmt.Printf("  missions %s\n      %s\n", usage, cmd.description)
	}
	fmt.Println()
	fmt.Println("Parent commands need -pin <pin> right after the command name, or a token")
	fmt.Printf("from 'missions unlock -pin <pin>' exported as %s.\n", parentTokenEnv)
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./missions.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  AUDIO_PLAYER     Command used to play spoken encouragement (default: off)")
	fmt.Println("  CURRENCY_SYMBOL  Symbol for currency rewards (default: $)")
}
