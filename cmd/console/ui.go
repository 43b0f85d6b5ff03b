package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "Type a command, /help for the list..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *session.Snapshot
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	entries   []logEntry
	lastScene uint8

	// Seed selection state
	showSeedModal bool
	seeds         []string
	seedMap       map[string]string
	selectedSeed  int
	loadingSeeds  bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type entryKind int

const (
	entryInput entryKind = iota
	entryResult
	entryInfo
	entryError
)

type logEntry struct {
	kind entryKind
	text string
}

type seedsLoadedMsg struct {
	seeds   []string
	seedMap map[string]string
	err     error
}

type sessionCreatedMsg struct {
	session *session.Snapshot
	err     error
}

type sessionMsg struct {
	session *session.Snapshot
	err     error
}

// resultMsg carries the outcome of one command.
type resultMsg struct {
	lines []string
	err   error
}

type progressTickMsg struct{}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:        cfg,
		client:        client,
		textarea:      ta,
		logViewport:   logVp,
		metaViewport:  metaVp,
		showSeedModal: true,
		loadingSeeds:  true,
	}
}

func itemName(id items.ID) string {
	if row := items.Lookup(id); row != nil {
		return row.Name
	}
	return fmt.Sprintf("Item 0x%02X", uint16(id))
}

func overrideLine(o override.Override) string {
	return fmt.Sprintf("%s → %s (P%d)", o.Key, itemName(items.ID(o.Value.Item)), o.Value.Player)
}

func writeMetadata(s *session.Snapshot) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	content.WriteString("Session ID:\n")
	content.WriteString(s.ID.String()[:8] + "...\n\n")

	content.WriteString("Seed:\n")
	content.WriteString(s.Seed + "\n\n")

	content.WriteString(fmt.Sprintf("Slot %d, player %d\n", s.Slot, s.Player))
	if s.Room != "" {
		content.WriteString("Room: " + s.Room + "\n")
	}
	content.WriteString("\n")

	inv := s.Inventory
	content.WriteString(labelStyle.Render("Inventory") + "\n")
	content.WriteString(fmt.Sprintf("• Hearts: %d/%d\n", inv.Health/save.HealthPerHeart, inv.HealthCapacity/save.HealthPerHeart))
	content.WriteString(fmt.Sprintf("• Heart pieces: %d\n", inv.HeartPieces))
	content.WriteString(fmt.Sprintf("• Rupees: %d\n", inv.Rupees))
	content.WriteString(fmt.Sprintf("• Skull tokens: %d\n", inv.SkullTokens))
	if inv.TriforcePieces > 0 {
		content.WriteString(fmt.Sprintf("• Triforce pieces: %d\n", inv.TriforcePieces))
	}
	if inv.PendingIceTraps > 0 {
		content.WriteString(fmt.Sprintf("• Ice traps due: %d\n", inv.PendingIceTraps))
	}
	for _, name := range inv.Items {
		content.WriteString("• " + name + "\n")
	}
	if inv.GameComplete {
		content.WriteString(resultStyle.Render("Game complete!") + "\n")
	}
	content.WriteString("\n")

	p := s.Progress
	content.WriteString(labelStyle.Render("Progress") + "\n")
	content.WriteString(fmt.Sprintf("• Hookshot %d, Strength %d\n", p.Hookshot, p.Strength))
	content.WriteString(fmt.Sprintf("• Wallet %d, Scale %d\n", p.Wallet, p.Scale))
	content.WriteString(fmt.Sprintf("• Magic %d, Ocarina %d\n\n", p.Magic, p.Ocarina))

	content.WriteString(labelStyle.Render("Pending") + "\n")
	if len(s.Pending) == 0 {
		content.WriteString("None\n")
	}
	for _, o := range s.Pending {
		content.WriteString("• " + overrideLine(o) + "\n")
	}
	if len(s.Outgoing) > 0 {
		content.WriteString("\n" + labelStyle.Render("Outgoing") + "\n")
		for _, o := range s.Outgoing {
			content.WriteString("• " + overrideLine(o) + "\n")
		}
	}

	if r := s.Registers; r.OutgoingKey != 0 || r.IncomingItem != 0 {
		content.WriteString("\n" + labelStyle.Render("Registers") + "\n")
		if r.OutgoingKey != 0 {
			content.WriteString(fmt.Sprintf("• Out: %s to P%d\n", itemName(items.ID(r.OutgoingItem)), r.OutgoingPlayer))
		}
		if r.IncomingItem != 0 {
			content.WriteString(fmt.Sprintf("• In: %s from P%d\n", itemName(items.ID(r.IncomingItem)), r.IncomingPlayer))
		}
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Run\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy ID\n")

	return content.String()
}

func formatCollect(res *engine.CollectResult) []string {
	line := fmt.Sprintf("%s: %s", displayName(res.Status.String()), res.Key)
	if res.Status != engine.Given {
		return []string{line}
	}

	a, d := res.Active, res.Dispatched
	line += " → " + itemName(a.Item)
	if a.LooksLike != 0 && a.LooksLike != a.Item {
		line += fmt.Sprintf(" (looks like %s)", itemName(a.LooksLike))
	}
	lines := []string{line}
	if d.Sent {
		lines = append(lines, fmt.Sprintf("Sent to player %d", a.Player))
	}
	if d.GameComplete {
		lines = append(lines, "The game is complete!")
	}
	if d.SilverSolved {
		lines = append(lines, "A silver rupee puzzle is solved")
	}
	if d.Warp != nil {
		lines = append(lines, fmt.Sprintf("Warp to entrance 0x%04X", d.Warp.Entrance))
	}
	return lines
}

func formatFrames(results []engine.FrameResult) []string {
	open := 0
	var lines []string
	for i, r := range results {
		if r.GateOpen {
			open++
		}
		if r.Delivered != nil {
			line := fmt.Sprintf("Frame %d: received %s", i+1, itemName(r.Delivered.Active.Item))
			if r.Delivered.Dispatched.GameComplete {
				line += ", the game is complete!"
			}
			lines = append(lines, line)
		}
		if r.IceTrap {
			lines = append(lines, fmt.Sprintf("Frame %d: ice trap!", i+1))
		}
		if r.Warp != nil {
			lines = append(lines, fmt.Sprintf("Frame %d: warp to entrance 0x%04X", i+1, r.Warp.Entrance))
		}
	}
	summary := fmt.Sprintf("Advanced %d frames, gate open for %d", len(results), open)
	return append([]string{summary}, lines...)
}

// writeLogContent renders the command log for the current viewport width.
func (m *ConsoleUI) writeLogContent() {
	width := m.logViewport.Width - 6 // Account for left(3) + right(3) padding
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("ITEM SHUFFLE") + "\n\n")
	content.WriteString("Collect locations and advance frames to play the seed.\n")
	content.WriteString("Type /help for the command list.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(width-6, 1))) + "\n\n")

	for _, e := range m.entries {
		text := wordwrap.String(e.text, width-4)
		switch e.kind {
		case entryInput:
			content.WriteString(userStyle.Render("> ") + text + "\n")
		case entryResult:
			content.WriteString(resultStyle.Render(text) + "\n")
		case entryError:
			content.WriteString(errorStyle.Render("Error: "+text) + "\n")
		default:
			content.WriteString(text + "\n")
		}
	}

	if m.loading {
		content.WriteString("\n" + m.renderProgressBar())
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *ConsoleUI) appendEntries(kind entryKind, lines ...string) {
	for _, l := range lines {
		m.entries = append(m.entries, logEntry{kind: kind, text: l})
	}
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.65) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 5
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showSeedModal {
		return m.loadSeeds()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle seed modal first
	if m.showSeedModal {
		return m.updateSeedModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeLogContent()
		if m.session != nil {
			m.metaViewport.SetContent(writeMetadata(m.session))
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m.handleCommand(input)
		}

	case resultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.appendEntries(entryError, msg.err.Error())
		} else {
			m.appendEntries(entryResult, msg.lines...)
		}
		m.writeLogContent()
		return m, m.refreshSession()

	case sessionMsg:
		m.loading = false
		if msg.err != nil {
			m.appendEntries(entryError, msg.err.Error())
		} else if msg.session != nil {
			m.session = msg.session
			m.metaViewport.SetContent(writeMetadata(m.session))
		}
		m.writeLogContent()

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeLogContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	m.appendEntries(entryInput, input)

	c, err := parseCommand(input)
	if err != nil {
		m.appendEntries(entryError, err.Error())
		m.writeLogContent()
		return m, nil
	}
	if c.hasScene {
		m.lastScene = c.scene
	} else if c.kind == cmdFrames {
		c.scene = m.lastScene
	}

	switch c.kind {
	case cmdHelp:
		m.appendEntries(entryInfo, titleStyle.Render("Help:")+helpText)
		m.writeLogContent()
		return m, nil

	case cmdCopy:
		if err := clipboard.WriteAll(m.session.ID.String()); err != nil {
			m.appendEntries(entryError, "failed to copy session ID: "+err.Error())
		} else {
			m.appendEntries(entryInfo, "Session ID copied to the clipboard")
		}
		m.writeLogContent()
		return m, nil

	case cmdStatus:
		m.loading = true
		m.writeLogContent()
		return m, m.refreshSession()
	}

	m.loading = true
	m.progressTick = 0
	m.writeLogContent()
	return m, tea.Batch(m.run(c), progressTick())
}

// run executes c against the API.
func (m ConsoleUI) run(c command) tea.Cmd {
	client, baseURL, id := m.client, m.config.APIBaseURL, m.session.ID
	return func() tea.Msg {
		switch c.kind {
		case cmdCollect:
			res, err := collect(client, baseURL, id, c.collect)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{lines: formatCollect(res)}

		case cmdDelayed:
			queued, err := pushDelayed(client, baseURL, id, c.delayed)
			if err != nil {
				return resultMsg{err: err}
			}
			if !queued {
				return resultMsg{lines: []string{fmt.Sprintf("No delayed item for flag 0x%X", c.delayed)}}
			}
			return resultMsg{lines: []string{fmt.Sprintf("Delayed item 0x%X queued, advance frames to receive it", c.delayed)}}

		case cmdFrames:
			statuses := make([]delivery.Status, c.frames)
			for i := range statuses {
				statuses[i] = delivery.Status{Scene: c.scene}
			}
			results, err := advanceFrames(client, baseURL, id, statuses)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{lines: formatFrames(results)}

		case cmdLook:
			res, err := chestType(client, baseURL, id, c.chest)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{lines: []string{"The chest appears " + displayName(res.ChestType.String())}}

		case cmdSave:
			if err := saveSession(client, baseURL, id); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{lines: []string{"Game saved"}}

		case cmdSync:
			res, err := syncSession(client, baseURL, id)
			if err != nil {
				return resultMsg{err: err}
			}
			received := "nothing received"
			if res.Received {
				received = "an item is incoming"
			}
			return resultMsg{lines: []string{fmt.Sprintf("Synced: %d sent, %s", res.Sent, received)}}
		}
		return resultMsg{err: fmt.Errorf("unsupported command")}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		s, err := getSession(m.client, m.config.APIBaseURL, m.session.ID)
		return sessionMsg{s, err}
	}
}

func (m ConsoleUI) loadSeeds() tea.Cmd {
	return func() tea.Msg {
		names, seedMap, err := listSeeds(m.client, m.config.APIBaseURL)
		return seedsLoadedMsg{names, seedMap, err}
	}
}

func (m ConsoleUI) createSessionFromSeed(seedFile string) tea.Cmd {
	return func() tea.Msg {
		s, err := createSession(m.client, m.config.APIBaseURL, session.CreateRequest{
			SeedFile: seedFile,
			Slot:     m.config.Slot,
			Room:     m.config.Room,
			Player:   m.config.Player,
		})
		return sessionCreatedMsg{s, err}
	}
}

func (m ConsoleUI) updateSeedModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case seedsLoadedMsg:
		m.loadingSeeds = false
		if msg.err != nil {
			m.err = msg.err
		} else if len(msg.seeds) == 0 {
			m.err = fmt.Errorf("the API has no seeds")
		} else {
			m.seeds = msg.seeds
			m.seedMap = msg.seedMap
		}

	case sessionCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.showSeedModal = false
		if m.width > 0 && m.height > 0 {
			m.resize()
		}
		m.appendEntries(entryInfo, fmt.Sprintf("Playing %s in slot %d", m.session.Seed, m.session.Slot))
		m.writeLogContent()
		m.metaViewport.SetContent(writeMetadata(m.session))
		m.textarea.Focus()
		m.ready = true
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingSeeds {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		}
		if m.err != nil || m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.selectedSeed > 0 {
				m.selectedSeed--
			}
		case tea.KeyDown:
			if m.selectedSeed < len(m.seeds)-1 {
				m.selectedSeed++
			}
		case tea.KeyEnter:
			if len(m.seeds) > 0 {
				seedFile := m.seedMap[m.seeds[m.selectedSeed]]
				m.loading = true
				return m, m.createSessionFromSeed(seedFile)
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showSeedModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress stays on the server until it restarts.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderSeedModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingSeeds {
		content.WriteString(modalTitleStyle.Render("Loading Seeds..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch available seeds..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("%v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Creating Session..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Preparing a fresh save file..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select a Seed"))
		content.WriteString("\n\n")

		for i, name := range m.seeds {
			if i == m.selectedSeed {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if m.showSeedModal {
		return m.renderSeedModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.65) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}
	usable = min(max(usable, 10), 80)

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := range usable {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
