package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/netlogs/i18n"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

type loadCompleteMsg struct {
	count    int
	duration time.Duration
}

type loadErrorMsg struct {
	err error
}

// startLoading imports the capture off the update loop. Without a file the
// viewer starts on an empty list.
func (m *Model) startLoading() tea.Cmd {
	return func() tea.Msg {
		if m.fileName == "" {
			return loadCompleteMsg{}
		}

		start := time.Now()
		count, err := m.importer.ImportFile(context.Background(), m.fileName)
		if err != nil {
			return loadErrorMsg{err: err}
		}
		return loadCompleteMsg{count: count, duration: time.Since(start)}
	}
}

func (m *Model) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	fileInfoStyle := lipgloss.NewStyle().
		Foreground(RGBGrey)

	title := titleStyle.Render(m.tr(i18n.KeyLoadingFile, nil))
	fileInfo := fileInfoStyle.Render(fmt.Sprintf("\n%s", m.fileName))

	spinnerText := fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, fileInfo)
	return spinnerStyle.Render(spinnerText)
}

func (m *Model) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	msg := fmt.Sprintf("❌ %v\n\nPress 'q' to quit", m.err)
	return errorStyle.Render(msg)
}

// matching vacuum's Dot spinner
func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}

type notice struct {
	id      int
	message string
	isError bool
}

// noticeBoard collects importer notifications. The importer runs inside a
// tea.Cmd goroutine while View reads the board.
type noticeBoard struct {
	mu      sync.Mutex
	nextID  int
	notices []notice
}

func newNoticeBoard() *noticeBoard {
	return &noticeBoard{}
}

func (b *noticeBoard) Info(msg string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.notices = append(b.notices, notice{id: b.nextID, message: msg})
	return b.nextID
}

func (b *noticeBoard) Error(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.notices = append(b.notices, notice{id: b.nextID, message: msg, isError: true})
}

func (b *noticeBoard) Dismiss(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range b.notices {
		if n.id == id {
			b.notices = append(b.notices[:i], b.notices[i+1:]...)
			return
		}
	}
}

// latest returns the most recent notice still showing
func (b *noticeBoard) latest() (notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.notices) == 0 {
		return notice{}, false
	}
	return b.notices[len(b.notices)-1], true
}
