package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airplane-seating-cli/model"
	"airplane-seating-cli/service"
)

type appState int

const (
	stateLoading appState = iota
	stateSeatList
	stateSeatMap
	stateAssignForm
	stateError
)

const requestTimeout = 10 * time.Second

type appModel struct {
	svc    service.Seating
	logger *log.Logger
	title  string

	state     appState
	lastState appState
	loading   string
	err       error
	status    string

	width  int
	height int

	sortKey      model.SortKey
	seats        []model.SeatSummary
	availability model.Availability

	seatList list.Model
	spinner  spinner.Model
	form     assignForm
}

type errMsg struct {
	err error
}

type seatsMsg struct {
	seats        []model.SeatSummary
	availability model.Availability
	err          error
}

type loadedMsg struct {
	found   bool
	startup bool
	err     error
}

type savedMsg struct {
	err error
}

type resetMsg struct {
	err error
}

type bookingMsg struct {
	booking model.Booking
	err     error
}

// Option customizes the TUI model.
type Option func(*appModel)

// WithLogger sends TUI logs to logger. Without it logs are discarded so the
// alternate screen stays clean.
func WithLogger(logger *log.Logger) Option {
	return func(m *appModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTitle replaces the header title.
func WithTitle(title string) Option {
	return func(m *appModel) {
		if title != "" {
			m.title = title
		}
	}
}

// New builds the interactive seating model over svc. On start it tries to
// load saved state and falls back to the current inventory when none exists.
func New(svc service.Seating, opts ...Option) tea.Model {
	m := appModel{
		svc:     svc,
		logger:  log.New(io.Discard, "", 0),
		title:   "Airplane Seating",
		state:   stateLoading,
		loading: "Loading saved seating",
		sortKey: model.BySeatNumber,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.seatList = newList("Seats • " + m.sortKey.Label())
	m.form = newAssignForm()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

// Run starts the program on the alternate screen. When logFile is set, logs
// are appended to it through tea.LogToFile.
func Run(svc service.Seating, logFile string, opts ...Option) error {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "seating")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, WithLogger(log.Default()))
	}
	_, err := tea.NewProgram(New(svc, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(true), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		var (
			cmd     tea.Cmd
			handled bool
		)
		m, cmd, handled = m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateLoading {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.lastState = recoverStateFrom(m.state, m.lastState)
		m.state = stateError
		m.logger.Printf("tui action=error err=%q", msg.err)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			if msg.startup {
				m.status = "Saved seating could not be loaded: " + msg.err.Error()
				return m, m.refreshCmd()
			}
			return m, errCmd(msg.err)
		}
		switch {
		case msg.found:
			m.status = "Seating loaded."
		case msg.startup:
			m.status = "No saved seating found. Starting with an empty cabin."
		default:
			m.status = "No saved seating found."
		}
		return m, m.refreshCmd()

	case savedMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.status = "Seating saved."
		m.state = m.lastState
		return m, nil

	case resetMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.status = "All seats released."
		return m, m.refreshCmd()

	case bookingMsg:
		if msg.err != nil {
			m.form.err = msg.err
			m.state = stateAssignForm
			return m, m.form.focus()
		}
		m.form.reset()
		m.status = fmt.Sprintf("Booked %s class seat(s) %s.", msg.booking.Class, strings.Join(msg.booking.SeatIDs, ", "))
		return m, m.refreshCmd()

	case seatsMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.seats = msg.seats
		m.availability = msg.availability
		m.seatList.Title = "Seats • " + m.sortKey.Label()
		m.seatList.SetItems(buildSeatItems(msg.seats))
		if m.lastState == stateSeatMap {
			m.state = stateSeatMap
		} else {
			m.state = stateSeatList
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSeatList:
		m.seatList, cmd = m.seatList.Update(msg)
	case stateAssignForm:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoading:
		return header + "\n\n" + m.loadingView()
	case stateSeatList:
		return header + "\n\n" + m.seatList.View()
	case stateSeatMap:
		return header + "\n\n" + renderSeatMap(m.seats)
	case stateAssignForm:
		return header + "\n\n" + m.form.view(m.availability)
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.title)
	sub := []string{}
	for _, c := range m.availability.Classes {
		sub = append(sub, fmt.Sprintf("%s: %d/%d free", c.Class, c.Available, c.Capacity))
	}
	if m.state == stateSeatList || m.state == stateSeatMap {
		sub = append(sub, "Sort: "+m.sortKey.Label())
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit"
	switch m.state {
	case stateSeatList:
		hints = "q quit • a assign • o sort • m seat map • s save • l load • r reset • / filter"
	case stateSeatMap:
		hints = "q quit • esc back • a assign • o sort • m seat list • s save • l load • r reset"
	case stateAssignForm:
		hints = "esc cancel • tab next field • ←/→ change • ctrl+s confirm"
	case stateError:
		hints = "esc back • ctrl+c quit"
	}

	statusLine := ""
	if m.status != "" && (m.state == stateSeatList || m.state == stateSeatMap) {
		statusLine = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(m.status)
	}
	return title + meta + statusLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}
	switch m.state {
	case stateError:
		if msg.String() == "esc" {
			m.state = m.lastState
			m.err = nil
			return m, nil, true
		}
		return m, nil, true

	case stateLoading:
		return m, nil, true

	case stateAssignForm:
		return m.handleFormKey(msg)
	}

	if m.state == stateSeatList && m.seatList.FilterState() == list.Filtering {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		if m.state == stateSeatMap {
			m.state = stateSeatList
			m.lastState = stateSeatList
			return m, nil, true
		}
		return m, nil, false
	case "a":
		m.lastState = m.state
		m.form.err = nil
		m.form.clampCount(m.policyLimit(m.form.class))
		m.state = stateAssignForm
		return m, m.form.focus(), true
	case "o":
		m.sortKey = m.sortKey.Next()
		return m, m.refreshCmd(), true
	case "m":
		if m.state == stateSeatMap {
			m.state = stateSeatList
		} else {
			m.state = stateSeatMap
		}
		m.lastState = m.state
		return m, nil, true
	case "s":
		return m.startLoading("Saving seating", m.saveCmd())
	case "l":
		return m.startLoading("Loading saved seating", m.loadCmd(false))
	case "r":
		return m.startLoading("Resetting seating", m.resetCmd())
	}
	return m, nil, false
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		m.form.blur()
		m.state = m.lastState
		return m, nil, true
	case "tab":
		return m, m.form.nextField(), true
	case "shift+tab":
		return m, m.form.prevField(), true
	case "ctrl+s":
		req, err := m.form.request()
		if err != nil {
			m.form.err = err
			return m, nil, true
		}
		m.form.err = nil
		m.form.blur()
		return m.startLoading("Assigning seats", m.assignCmd(req))
	}

	switch m.form.field {
	case fieldClass:
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			m.form.toggleClass()
			m.form.clampCount(m.policyLimit(m.form.class))
			return m, nil, true
		}
		return m, nil, true
	case fieldCount:
		switch msg.String() {
		case "left", "-", "h", "down":
			m.form.count--
			m.form.clampCount(m.policyLimit(m.form.class))
			return m, nil, true
		case "right", "+", "l", "up":
			m.form.count++
			m.form.clampCount(m.policyLimit(m.form.class))
			return m, nil, true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) startLoading(label string, cmd tea.Cmd) (appModel, tea.Cmd, bool) {
	if m.state != stateLoading && m.state != stateAssignForm {
		m.lastState = m.state
	}
	m.loading = label
	m.state = stateLoading
	return m, tea.Batch(cmd, m.spinner.Tick), true
}

func (m appModel) policyLimit(class model.FareClass) int {
	if c, ok := m.availability.For(class); ok && c.MaxPerBooking > 0 {
		return c.MaxPerBooking
	}
	return model.DefaultPolicy().Limit(class)
}

func (m appModel) loadingView() string {
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), m.loading, hint("Please wait..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.seatList.SetSize(m.width, h)
	m.form.setWidth(m.width)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func recoverStateFrom(state appState, last appState) appState {
	switch state {
	case stateLoading, stateError:
		if last == stateSeatMap {
			return stateSeatMap
		}
		return stateSeatList
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lowered := make([]string, len(targets))
	for i, target := range targets {
		lowered[i] = strings.ToLower(target)
	}
	return list.DefaultFilter(term, lowered)
}

func (m appModel) refreshCmd() tea.Cmd {
	svc, key := m.svc, m.sortKey
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		seats, err := svc.Seats(ctx, key)
		if err != nil {
			return seatsMsg{err: err}
		}
		avail, err := svc.Availability(ctx)
		return seatsMsg{seats: seats, availability: avail, err: err}
	}
}

func (m appModel) loadCmd(startup bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		found, err := svc.Load(ctx)
		return loadedMsg{found: found, startup: startup, err: err}
	}
}

func (m appModel) saveCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return savedMsg{err: svc.Save(ctx)}
	}
}

func (m appModel) resetCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return resetMsg{err: svc.Reset(ctx)}
	}
}

func (m appModel) assignCmd(req model.AssignmentRequest) tea.Cmd {
	svc, logger := m.svc, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		booking, err := svc.Assign(ctx, req)
		if err != nil {
			logger.Printf("tui action=assign class=%s count=%d err=%q", req.Class, req.Count, err)
		}
		return bookingMsg{booking: booking, err: err}
	}
}

type seatItem struct {
	seat model.SeatSummary
}

func (s seatItem) Title() string {
	return fmt.Sprintf("%-4s %-8s %s", s.seat.SeatID, s.seat.Class, s.seat.Status)
}

func (s seatItem) Description() string {
	if s.seat.PassengerName == "" {
		return "No passenger"
	}
	return "Passenger: " + s.seat.PassengerName
}

func (s seatItem) FilterValue() string {
	return s.seat.SeatID + " " + s.seat.Class.String() + " " + s.seat.PassengerName
}

func buildSeatItems(seats []model.SeatSummary) []list.Item {
	items := make([]list.Item, 0, len(seats))
	for _, seat := range seats {
		items = append(items, seatItem{seat: seat})
	}
	return items
}

// describeError turns engine errors into short messages for the form.
func describeError(err error) string {
	var allocErr *model.AllocationError
	switch {
	case errors.As(err, &allocErr):
		return allocErr.Error()
	case errors.Is(err, model.ErrInvalidPassengerName):
		return "Passenger names must not be blank."
	default:
		return err.Error()
	}
}
