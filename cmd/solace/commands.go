package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comigor/solace/internal/sentiment"
	"github.com/comigor/solace/internal/store"
)

// command dispatches one /slash line; it returns true when the REPL should
// exit.
func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/help":
		fmt.Print(`commands:
  /new                start a new chat
  /chats              list chats
  /open <id>          resume a chat
  /delete <id>        delete a chat and its messages
  /history            replay the current chat
  /model [name]       show or switch the upstream model
  /personality [key]  show or switch the personality
  /temperature <v>    set sampling temperature
  /maxtokens <n>      set the reply length cap
  /mood <text>        classify a message without sending it
  /resources          show support resources for the last mood
  /quit               exit
`)
	case "/quit", "/exit":
		return true
	case "/new":
		r.session = ""
		fmt.Println("started a new chat")
	case "/chats":
		chats, err := r.store.ListChats()
		if err != nil {
			fmt.Println("[error] history unavailable")
			break
		}
		if len(chats) == 0 {
			fmt.Println("no chats yet")
			break
		}
		for _, c := range chats {
			fmt.Printf("  %s  %s\n", c.ID, c.Title)
		}
	case "/open":
		if len(args) != 1 {
			fmt.Println("usage: /open <id>")
			break
		}
		r.session = args[0]
		r.replayHistory()
	case "/delete":
		if len(args) != 1 {
			fmt.Println("usage: /delete <id>")
			break
		}
		if err := r.store.DeleteChat(args[0]); err != nil {
			fmt.Printf("[error] %v\n", err)
			break
		}
		if r.session == args[0] {
			r.session = ""
		}
		fmt.Println("chat deleted")
	case "/history":
		if r.session == "" {
			fmt.Println("no chat open")
			break
		}
		r.replayHistory()
	case "/model":
		if len(args) == 0 {
			fmt.Printf("current model: %s\n", r.settings.Model.Model)
			for _, m := range r.cfg.Models {
				fmt.Printf("  %-14s %s (%d tokens)\n", m.Name, m.Description, m.ContextLength)
			}
			break
		}
		m, ok := r.cfg.Model(args[0])
		if !ok {
			fmt.Printf("unknown model %q, see /model\n", args[0])
			break
		}
		r.settings.Model.Model = m.ID
		fmt.Printf("model set to %s\n", m.ID)
	case "/personality":
		if len(args) == 0 {
			fmt.Printf("current personality: %s\n", r.settings.Personality)
			prompts, err := r.store.ListPrompts()
			if err != nil {
				break
			}
			for _, p := range prompts {
				if key, ok := strings.CutPrefix(p.Name, "personality_"); ok {
					fmt.Printf("  %-14s %s\n", key, p.Description)
				}
			}
			break
		}
		r.settings.Personality = args[0]
		fmt.Printf("personality set to %s\n", args[0])
	case "/temperature":
		if len(args) != 1 {
			fmt.Printf("temperature: %.2f\n", r.settings.Model.Temperature)
			break
		}
		v, err := strconv.ParseFloat(args[0], 32)
		if err != nil || v < 0 || v > 2 {
			fmt.Println("temperature must be a number between 0 and 2")
			break
		}
		r.settings.Model.Temperature = float32(v)
	case "/maxtokens":
		if len(args) != 1 {
			fmt.Printf("max tokens: %d\n", r.settings.Model.MaxTokens)
			break
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Println("max tokens must be a positive integer")
			break
		}
		r.settings.Model.MaxTokens = n
	case "/mood":
		if len(args) == 0 {
			fmt.Println("usage: /mood <text>")
			break
		}
		res := r.tagger.Classify(strings.Join(args, " "))
		fmt.Printf("[mood: %s (%d%%), polarity %.2f]\n", res.Mood, int(res.Confidence*100), res.Polarity)
	case "/resources":
		r.showResources()
	default:
		fmt.Printf("unknown command %s, see /help\n", cmd)
	}
	return false
}

// showResources re-derives the mood from the last user message of the open
// chat, so suggestions stay reachable even after a neutral turn.
func (r *repl) showResources() {
	if r.session == "" {
		printResources(sentiment.Resources(sentiment.Neutral))
		return
	}
	history, err := r.store.History(r.session)
	if err != nil {
		fmt.Println("[error] history unavailable")
		return
	}
	mood := sentiment.Neutral
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == store.RoleUser {
			mood = r.tagger.Classify(history[i].Content).Mood
			break
		}
	}
	printResources(sentiment.Resources(mood))
}
