package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"stickermissions/internal/app"
	"stickermissions/internal/countdown"
	"stickermissions/internal/models"
	"stickermissions/internal/pinpad"
)

func runStatus(a *app.App, args []string) error {
	status := a.Status()

	name := status.ChildName
	if !status.Onboarded {
		name = "(not set up, run 'missions onboard -name <name>')"
	}
	fmt.Printf("Child:    %s\n", name)
	fmt.Printf("Month:    %s\n", status.MonthID)
	fmt.Printf("Stickers: %d (bonus balance %d)\n", status.Stickers, status.BonusBalance)
	fmt.Printf("Reward:   %s\n", status.Reward)
	if status.HasNextReward {
		fmt.Printf("Next:     %s in %d more sticker(s)\n", status.NextReward, status.NextRemaining)
	}
	fmt.Println()

	if len(status.Missions) == 0 {
		fmt.Println("No missions yet.")
	}
	for _, m := range status.Missions {
		reward := ""
		if m.Reward != "" {
			reward = " -> " + m.Reward
		}
		fmt.Printf("  [%-9s] %s  %s (%d min)%s\n", m.Status, m.ID, m.Title, m.DurationMinutes, reward)
	}
	if status.Eligible {
		fmt.Println()
		fmt.Println("All missions done! Run 'missions award' to place today's sticker.")
	}
	fmt.Println()
	fmt.Println(status.Summary)
	return nil
}

func runBoard(a *app.App, args []string) error {
	board, err := a.Board()
	if err != nil {
		return err
	}
	for _, day := range board {
		cell := "."
		if day.Sticker != nil && day.Sticker.Count > 0 {
			cell = string(day.Sticker.StickerType)
			if day.Sticker.IsBonusUsed {
				cell += " (bonus)"
			}
		}
		marker := " "
		if day.IsToday {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, day.Date, cell)
	}
	return nil
}

func runStats(a *app.App, args []string) error {
	stats := a.Stats()
	if len(stats) == 0 {
		fmt.Println("No missions completed this month.")
		return nil
	}
	for _, s := range stats {
		fmt.Printf("%4d  %s\n", s.Count, s.Title)
	}
	return nil
}

func runArchives(a *app.App, args []string) error {
	archives := a.Archives()
	if len(archives) == 0 {
		fmt.Println("No archived months.")
	}
	for _, entry := range archives {
		fmt.Printf("%s  %3d stickers  archived %s\n", entry.MonthID, entry.TotalStickers, entry.ArchivedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runStart(a *app.App, args []string) error {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	id := fs.String("id", "", "Mission id (required)")
	interval := fs.Duration("interval", time.Second, "Countdown tick interval")
	fs.Parse(args)
	if *id == "" {
		return errors.New("-id is required")
	}

	timer, err := a.StartMission(*id)
	if err != nil {
		return err
	}
	fmt.Printf("Mission started: %s remaining.\n", timer.Remaining())
	return runCountdown(a, timer, *interval)
}

func runResume(a *app.App, args []string) error {
	fs := flag.NewFlagSet("resume", flag.ExitOnError)
	interval := fs.Duration("interval", time.Second, "Countdown tick interval")
	fs.Parse(args)

	timer, err := a.ResumeMission()
	if err != nil {
		return err
	}
	fmt.Printf("Mission resumed: %s remaining.\n", timer.Remaining())
	return runCountdown(a, timer, *interval)
}

// runCountdown runs timer in the foreground. Lines typed on stdin pause and
// resume it; Ctrl+C stops the clock and leaves the mission active.
func runCountdown(a *app.App, timer *countdown.Timer, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Type p to pause, r to resume. Press Ctrl+C to stop the clock.")
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if msg := handleCountdownKey(a, scanner.Text()); msg != "" {
				fmt.Println(msg)
			}
		}
	}()

	err := a.RunCountdown(ctx, timer, interval, func(remaining time.Duration) {
		if remaining%time.Minute == 0 || remaining <= 10*time.Second {
			fmt.Printf("  %s left\n", remaining.Round(time.Second))
		}
	})
	switch {
	case err == nil:
		fmt.Println("Time's up! Mission complete.")
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Println("Countdown stopped. The mission stays active; run 'missions resume' to continue.")
		return nil
	case errors.Is(err, countdown.ErrCancelled):
		fmt.Println("Mission cancelled.")
		return nil
	}
	return err
}

// handleCountdownKey applies one line of countdown input and returns the
// message to show, or "" when the line does nothing
func handleCountdownKey(a *app.App, line string) string {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "p", "pause":
		if a.PauseCountdown() {
			return "Paused."
		}
	case "r", "resume":
		if a.ResumeCountdown() {
			return "Resumed."
		}
	}
	return ""
}

func runCancel(a *app.App, args []string) error {
	id, err := parseID("cancel", args)
	if err != nil {
		return err
	}
	if !a.CancelMission(id) {
		return errors.New("mission is not active")
	}
	fmt.Println("Mission returned to pending.")
	return nil
}

func runComplete(a *app.App, args []string) error {
	id, err := parseID("complete", args)
	if err != nil {
		return err
	}
	if !a.CompleteMission(id) {
		return errors.New("mission is not active")
	}
	fmt.Println("Mission complete!")
	return nil
}

func runWarp(a *app.App, args []string) error {
	fs := flag.NewFlagSet("warp", flag.ExitOnError)
	pin := fs.String("pin", "", "Parent PIN (required)")
	fs.Parse(args)

	if err := a.Unlock(pinpad.TargetTimeWarp, *pin); err != nil {
		return err
	}
	fmt.Println("Time warp! Mission complete.")
	return nil
}

func runAward(a *app.App, args []string) error {
	fs := flag.NewFlagSet("award", flag.ExitOnError)
	stickerType := fs.String("type", string(models.StickerStar), "Sticker type")
	fs.Parse(args)

	if !a.AwardSticker(models.StickerType(*stickerType)) {
		return errors.New("no sticker available: finish every mission first, one sticker per day")
	}
	fmt.Println("Sticker placed!")
	return nil
}

func runBonus(a *app.App, args []string) error {
	if !a.UseBonus() {
		return errors.New("no bonus sticker to use or the board is full")
	}
	fmt.Println("Bonus sticker placed.")
	return nil
}

func runOnboard(a *app.App, args []string) error {
	return setProfile(a, "onboard", args)
}

func runProfile(a *app.App, args []string) error {
	return setProfile(a, "profile", args)
}

func setProfile(a *app.App, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	childName := fs.String("name", "", "Child's name (required)")
	photoPath := fs.String("photo", "", "Photo file")
	fs.Parse(args)

	var photo []byte
	if *photoPath != "" {
		data, err := os.ReadFile(*photoPath)
		if err != nil {
			return fmt.Errorf("failed to read photo: %w", err)
		}
		photo = data
	}
	if err := a.SetProfile(*childName, photo); err != nil {
		return err
	}
	fmt.Printf("Profile saved for %s.\n", strings.TrimSpace(*childName))
	return nil
}

func runAdd(a *app.App, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "Mission title (required)")
	minutes := fs.Int("minutes", 0, "Duration in minutes (required)")
	reward := fs.String("reward", "", "Reward text shown with the mission")
	fs.Parse(args)

	mission, err := a.AddMission(*title, *minutes, *reward)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", mission.Title, mission.ID)
	return nil
}

func runDelete(a *app.App, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}
	ok, err := a.DeleteMission(id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("mission not found")
	}
	fmt.Println("Mission deleted.")
	return nil
}

func runGrantBonus(a *app.App, args []string) error {
	fs := flag.NewFlagSet("grant-bonus", flag.ExitOnError)
	n := fs.Int("n", 1, "Number of bonus stickers")
	fs.Parse(args)

	if err := a.GrantBonus(*n); err != nil {
		return err
	}
	fmt.Printf("Granted %d bonus sticker(s).\n", *n)
	return nil
}

func runRollover(a *app.App, args []string) error {
	entry, err := a.Rollover()
	if err != nil {
		return err
	}
	fmt.Printf("Archived %s with %d stickers.\n", entry.MonthID, entry.TotalStickers)
	return nil
}

func runReward(a *app.App, args []string) error {
	fs := flag.NewFlagSet("reward", flag.ExitOnError)
	rewardType := fs.String("type", "", "Reward type: currency or text")
	steps := fs.String("steps", "", "Comma-separated threshold:reward pairs, e.g. 0:Candy,5:Toy")
	fs.Parse(args)

	if *rewardType == "" && *steps == "" {
		config := a.RewardConfig()
		fmt.Printf("Type: %s\n", config.Type)
		for _, step := range config.Steps {
			fmt.Printf("  %3d stickers: %s\n", step.StickersThreshold, step.RewardText)
		}
		return nil
	}

	parsed, err := parseSteps(*steps)
	if err != nil {
		return err
	}
	if err := a.SetRewardConfig(models.RewardConfig{Type: models.RewardType(*rewardType), Steps: parsed}); err != nil {
		return err
	}
	fmt.Println("Reward tiers saved.")
	return nil
}

func parseSteps(raw string) ([]models.RewardStep, error) {
	steps := []models.RewardStep{}
	if strings.TrimSpace(raw) == "" {
		return steps, nil
	}
	for _, part := range strings.Split(raw, ",") {
		threshold, text, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid step %q, want threshold:reward", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(threshold))
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q: %w", threshold, err)
		}
		steps = append(steps, models.RewardStep{StickersThreshold: n, RewardText: strings.TrimSpace(text)})
	}
	return steps, nil
}

func runPreset(a *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: preset list|save|load|delete")
	}

	switch args[0] {
	case "list":
		presets := a.Presets()
		if len(presets) == 0 {
			fmt.Println("No presets saved.")
		}
		for _, p := range presets {
			fmt.Printf("%s  %s (%d missions)\n", p.ID, p.Name, len(p.Missions))
		}
		return nil
	case "save":
		fs := flag.NewFlagSet("preset save", flag.ExitOnError)
		name := fs.String("name", "", "Preset name (required)")
		fs.Parse(args[1:])
		preset, err := a.SavePreset(*name)
		if err != nil {
			return err
		}
		fmt.Printf("Saved preset %s (%s)\n", preset.Name, preset.ID)
		return nil
	case "load":
		id, err := parseID("preset load", args[1:])
		if err != nil {
			return err
		}
		if err := a.LoadPreset(id); err != nil {
			return err
		}
		fmt.Println("Preset loaded. Existing missions were replaced.")
		return nil
	case "delete":
		id, err := parseID("preset delete", args[1:])
		if err != nil {
			return err
		}
		ok, err := a.DeletePreset(id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("preset not found")
		}
		fmt.Println("Preset deleted.")
		return nil
	}
	return fmt.Errorf("unknown preset command: %s", args[0])
}

func runPIN(a *app.App, args []string) error {
	fs := flag.NewFlagSet("pin", flag.ExitOnError)
	current := fs.String("current", "", "Current PIN (required)")
	next := fs.String("new", "", "New 4-digit PIN (required)")
	confirm := fs.String("confirm", "", "New PIN again (required)")
	fs.Parse(args)

	if err := a.ChangePIN(*current, *next, *confirm); err != nil {
		return err
	}
	fmt.Println("PIN changed. Existing parent tokens no longer work.")
	return nil
}

func runUnlock(a *app.App, args []string) error {
	token, err := a.IssueParentGrant()
	if err != nil {
		return err
	}
	fmt.Printf("export %s=%s\n", parentTokenEnv, token)
	return nil
}

func parseID(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.String("id", "", "Id (required)")
	fs.Parse(args)
	if *id == "" {
		return "", errors.New("-id is required")
	}
	return *id, nil
}
