package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"iris/internal/recommend"
)

// isTTY checks if the current environment has a TTY available
func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func errorText(msg string) string {
	return red("error: " + msg)
}

// printResult renders one decision for the terminal.
func printResult(res recommend.Result, debug bool) {
	if len(res.Recommendations) == 0 {
		switch {
		case res.Debug.Trigger.Suppression != "":
			fmt.Printf("%s %s\n", yellow("suppressed:"), string(res.Debug.Trigger.Suppression))
		case res.Debug.BelowThreshold:
			fmt.Printf("%s trigger %s fired, no lens cleared the threshold\n",
				yellow("empty:"), string(res.Debug.Trigger.Reason))
		default:
			fmt.Println(gray("no trigger"))
		}
	} else {
		fmt.Printf("%s %s\n", green("trigger:"), string(res.Debug.Trigger.Reason))
		for _, rec := range res.Recommendations {
			fmt.Printf("  %s %s %s\n", bold(rec.LensID), scoreText(rec.Score), gray(rec.Reason))
			fmt.Printf("    %s %s\n", cyan("seed:"), rec.TaskSeed.Title)
			if len(rec.TaskSeed.SuggestedActions) > 0 {
				fmt.Printf("    %s %s\n", cyan("actions:"), strings.Join(rec.TaskSeed.SuggestedActions, ", "))
			}
		}
	}

	if debug {
		printDebug(res.Debug)
	}
}

func printDebug(d recommend.Debug) {
	fmt.Println(gray("---"))
	fmt.Printf("%s %v\n", blue("intents:"), d.Signals.IntentSignals)
	fmt.Printf("%s %v\n", blue("domains:"), d.Signals.DomainSignals)
	fmt.Printf("%s %.2f (friction %.2f)\n", blue("confidence:"), d.Signals.Confidence, d.Signals.FrictionScore)
	for _, sc := range d.Scored {
		fmt.Printf("%s %-12s %.3f (domain %.2f intent %.2f action %.2f)\n",
			blue("scored:"), sc.LensID, sc.Score, sc.DomainMatch, sc.IntentMatch, sc.ActionMatch)
	}
}

func scoreText(score float64) string {
	return yellow(fmt.Sprintf("%.3f", score))
}
