package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/match"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
)

type templates struct {
	page  *template.Template
	board *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"add": func(a, b int) int { return a + b },
		"mul": func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	page := template.Must(template.New("page").Funcs(funcs()).Parse(pageTemplate))
	// Define the board template within the same set so the page can include it
	template.Must(page.New("board").Parse(boardTemplate))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{page: page, board: board}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

type cellView struct {
	Index    int
	Symbol   string
	Playable bool
	Winning  bool
}

// boardView is the data behind the board fragment.
type boardView struct {
	MatchID  string
	State    string
	Message  string
	Error    string
	Cue      string
	Thinking bool
	Cells    []cellView
	Tally    match.Tally
	Theme    theme.Theme
}

func newBoardView(th theme.Theme, st app.Snapshot, errMsg, cue string) boardView {
	v := boardView{
		MatchID:  st.MatchID,
		State:    st.Status.String(),
		Message:  th.StatusLine(statusOf(st)),
		Error:    errMsg,
		Cue:      cue,
		Thinking: st.Thinking,
		Tally:    st.Tally,
		Theme:    th,
		Cells:    make([]cellView, domain.Size),
	}
	humanToMove := st.Status == match.InProgress && st.Turn == match.HumanNext
	for i, c := range st.Board {
		v.Cells[i] = cellView{
			Index:    i,
			Symbol:   th.Symbol(c),
			Playable: humanToMove && c == domain.Empty,
		}
	}
	if st.Status == match.Won {
		for _, i := range st.WinningLine {
			v.Cells[i].Winning = true
		}
	}
	return v
}

func statusOf(st app.Snapshot) theme.Status {
	return theme.Status{Status: st.Status, Turn: st.Turn, Winner: st.Winner}
}

const pageTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>{{.Theme.Title}}</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
body { background: {{.Theme.Color "background" "#ffffff"}}; color: {{.Theme.Color "text" "#000000"}}; font-family: sans-serif; }
.board { background: {{.Theme.Color "board" "#eeeeee"}}; }
.score.computer, .mark-computer { color: {{.Theme.Computer.Color}}; }
.score.human, .mark-human { color: {{.Theme.Human.Color}}; }
button.win { outline: 3px solid {{.Theme.Color "accent" "#f1c40f"}}; }
</style>
</head><body>
<h1>{{.Theme.Title}}</h1>
{{with .Theme.Tagline}}<p class="tagline">{{.}}</p>{{end}}
<div hx-ext="sse" hx-sse="connect:/events">
  <div id="board-slot" hx-sse="swap:board">{{template "board" .Board}}</div>
</div>
{{with .Theme.Footer}}<p class="footer">{{.}}</p>{{end}}
</body></html>`

const boardTemplate = `
<div id="board" class="board" data-match="{{.MatchID}}" data-status="{{.State}}"{{if .Cue}} data-cue="{{.Cue}}"{{end}}{{if .Thinking}} data-thinking="true"{{end}}>
  <div class="scores">
    <span class="score human">{{.Theme.Human.Name}}: {{.Tally.HumanWins}}</span>
    <span class="score draws">Draws: {{.Tally.Draws}}</span>
    <span class="score computer">{{.Theme.Computer.Name}}: {{.Tally.ComputerWins}}</span>
  </div>
  <p class="status">{{.Message}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{/* 3x3 grid */}}
  {{range $r := iter 3}}
  <div class="row">
    {{range $c := iter 3}}{{with index $.Cells (add (mul $r 3) $c)}}
      <form hx-post="/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="cell" value="{{.Index}}">
        <button type="submit"{{if not .Playable}} disabled{{end}}{{if .Winning}} class="win"{{end}}>{{.Symbol}}</button>
      </form>
    {{end}}{{end}}
  </div>
  {{end}}
  <div class="controls">
    <form hx-post="/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button type="submit">New Game</button></form>
    <form hx-post="/scores/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button type="submit">Reset Scores</button></form>
  </div>
</div>
`
