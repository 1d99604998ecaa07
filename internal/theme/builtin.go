package theme

import "github.com/jaminalder/minimax-tic-tac-toe/internal/match"

// Classic is plain X and O.
var Classic = Theme{
	Name:     "classic",
	Title:    "Tic-Tac-Toe",
	Tagline:  "You play O. The computer never loses.",
	Computer: Side{Name: "Computer", Symbol: "X", Color: "#c0392b"},
	Human:    Side{Name: "You", Symbol: "O", Color: "#2471a3"},
	Colors: map[string]string{
		"background": "#ffffff",
		"board":      "#f4f6f7",
		"text":       "#1c2833",
	},
	Messages: Messages{
		YourTurn: "Your move",
		Won:      "You win!",
		Lost:     "The computer wins.",
	},
}

// Tesla pits the truck-driving AI against Einstein.
var Tesla = Theme{
	Name:     "tesla",
	Title:    "🧠 Einstein vs Tesla 🚛",
	Tagline:  "The Ultimate Battle of Minds",
	Footer:   "Tesla AI uses advanced algorithms - Can you outsmart it? 🤖",
	Computer: Side{Name: "Tesla", Symbol: "🚛", Color: "#f87171"},
	Human:    Side{Name: "Einstein", Symbol: "🧠", Color: "#60a5fa"},
	Colors: map[string]string{
		"background": "#1e1b4b",
		"board":      "#111827",
		"text":       "#f9fafb",
		"accent":     "#9333ea",
	},
	Cues: map[match.EventKind]string{
		match.HumanMoved:    "place-human",
		match.ComputerMoved: "place-computer",
		match.MatchWon:      "fanfare",
		match.MatchDrawn:    "handshake",
		match.Reset:         "shuffle",
	},
	Messages: Messages{
		Thinking: "🚛 {name} is Thinking...",
		YourTurn: "🧠 {name}'s Turn (Your Move)",
		Won:      "🧠 {name} Wins! Incredible!",
		Lost:     "🚛 {name} Wins! The AI is unbeatable!",
		Draw:     "🤝 It's a Draw! Great match!",
	},
}
