package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/pr-review-agent/internal/gitutil"
)

const banner = "PR REVIEW AGENT · review pull requests and scan repositories"

const helpText = `
  /repo [owner/repo]   Select the repository to work on.
  /prs                 List the pull requests of the selected repository.
  /review [number]     Generate a review for a pull request without posting it.
  /post [number]       Review a pull request and post the comment.
  /scan                Scan the repository and show findings without filing them.
  /help                Show this help message.
  /exit, /quit         Exit.`

type model struct {
	styles  styles
	service reviewService
	envFile string

	// UI Components
	viewport  viewport.Model
	textarea  textarea.Model
	spinner   spinner.Model
	isLoading bool
	width     int

	// Session State
	owner   string
	repo    string
	history []string
}

func initialModel(theme ThemeName, envFile string) *model {
	styles := GetTheme(theme)
	ta := textarea.New()
	ta.Placeholder = "Enter a command, e.g. /repo owner/repo"
	ta.Focus()
	ta.Prompt = styles.prompt.Render("► ")
	ta.CharLimit = 300
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.success

	return &model{
		styles:    styles,
		envFile:   envFile,
		textarea:  ta,
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		isLoading: true,
		history:   []string{styles.header.Render(banner), "", "⚙ Loading configuration..."},
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(initializeServiceCmd(m.envFile), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m, m.processCommand(input)
		}

	case serviceReadyMsg:
		m.isLoading = false
		if msg.err != nil {
			m.print("", m.styles.error.Render(msg.err.Error()))
			return m, nil
		}
		m.service = msg.service
		m.print("", m.styles.success.Render("✓ READY"), "", "Type /help for commands.")
		return m, nil

	case pullRequestsMsg:
		m.isLoading = false
		m.print("", m.pullRequestList(msg))
		return m, nil

	case reviewMsg:
		m.isLoading = false
		m.print("",
			m.styles.success.Render(fmt.Sprintf("REVIEW OF #%d (not posted)", msg.number)),
			renderMarkdown(msg.body, m.viewport.Width-2),
			m.styles.inactive.Render(fmt.Sprintf("Use '/post %d' to publish a review.", msg.number)),
		)
		return m, nil

	case commentPostedMsg:
		m.isLoading = false
		m.print("", m.styles.success.Render(fmt.Sprintf("✓ Review posted on #%d", msg.number)))
		if msg.url != "" {
			m.print(m.styles.inactive.Render(msg.url))
		}
		return m, nil

	case findingsMsg:
		m.isLoading = false
		m.print("", renderMarkdown(findingsMarkdown(msg.repo, msg.findings), m.viewport.Width-2))
		return m, nil

	case errorMsg:
		m.isLoading = false
		m.print("", m.styles.error.Render("⚠ "+msg.err.Error()))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.textarea.SetWidth(msg.Width - 10)
		m.viewport.SetContent(strings.Join(m.history, "\n"))
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m *model) View() string {
	if m.service == nil && m.isLoading {
		return fmt.Sprintf("\n  %s Starting...\n\n", m.spinner.View())
	}

	repo := "REPO: None Selected"
	if m.repo != "" {
		repo = fmt.Sprintf("REPO: %s/%s", m.owner, m.repo)
	}
	status := m.styles.inactive.Render(repo)

	var loadingIndicator string
	if m.isLoading {
		loadingIndicator = " " + m.spinner.View() + " " + m.styles.success.Render("WORKING...")
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.viewport.Render(m.viewport.View()),
			m.styles.footer.Render(
				lipgloss.JoinHorizontal(lipgloss.Left,
					m.textarea.View(),
					loadingIndicator,
				),
			),
			status,
		),
	)
}

// print appends lines to the history and scrolls to them.
func (m *model) print(lines ...string) {
	m.history = append(m.history, lines...)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) usage(text string) tea.Cmd {
	m.print(m.styles.error.Render("USAGE: " + text))
	return nil
}

func (m *model) processCommand(input string) tea.Cmd {
	m.print(m.styles.prompt.Render("► ") + input)

	parts := strings.Fields(input)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "/help", "/h":
		m.print("", m.styles.success.Render("AVAILABLE COMMANDS:")+helpText)
		return nil
	case "/exit", "/quit":
		return tea.Quit
	}

	if m.service == nil {
		m.print(m.styles.error.Render("The review service is not available."))
		return nil
	}
	if m.isLoading {
		m.print(m.styles.inactive.Render("Still working on the previous command."))
		return nil
	}

	switch command {
	case "/repo":
		if len(args) != 1 {
			return m.usage("/repo [owner/repo]")
		}
		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			m.print(m.styles.error.Render(err.Error()))
			return nil
		}
		m.owner, m.repo = owner, repo
		m.print(m.styles.success.Render(fmt.Sprintf("✓ Repository set to %s/%s", owner, repo)))
		return nil

	case "/prs", "/ls":
		if !m.requireRepo() {
			return nil
		}
		return m.start("→ Fetching pull requests...", listPullRequestsCmd(m.service, m.owner, m.repo))

	case "/review", "/post":
		if len(args) != 1 {
			return m.usage(command + " [number]")
		}
		number, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil || number <= 0 {
			m.print(m.styles.error.Render(fmt.Sprintf("Invalid pull request number '%s'.", args[0])))
			return nil
		}
		if !m.requireRepo() {
			return nil
		}
		if command == "/post" {
			return m.start(fmt.Sprintf("→ Reviewing and posting on #%d...", number), postReviewCmd(m.service, m.owner, m.repo, number))
		}
		return m.start(fmt.Sprintf("→ Reviewing #%d...", number), generateReviewCmd(m.service, m.owner, m.repo, number))

	case "/scan":
		if !m.requireRepo() {
			return nil
		}
		return m.start("→ Scanning repository... (this may take a while)", scanRepositoryCmd(m.service, m.owner, m.repo))

	default:
		m.print("", m.styles.error.Render(fmt.Sprintf("UNKNOWN COMMAND: %s", command)), m.styles.inactive.Render("Type /help for assistance."))
		return nil
	}
}

func (m *model) requireRepo() bool {
	if m.repo != "" {
		return true
	}
	m.print(m.styles.error.Render("No repository is selected. Use '/repo owner/repo' first."))
	return false
}

func (m *model) start(status string, cmd tea.Cmd) tea.Cmd {
	m.isLoading = true
	m.print("", m.styles.command.Render(status))
	return tea.Batch(m.spinner.Tick, cmd)
}

func (m *model) pullRequestList(msg pullRequestsMsg) string {
	if len(msg.prs) == 0 {
		return m.styles.inactive.Render("No pull requests found in " + msg.repo + ".")
	}
	var b strings.Builder
	b.WriteString(m.styles.success.Render("PULL REQUESTS IN " + strings.ToUpper(msg.repo) + ":"))
	for _, pr := range msg.prs {
		state := m.styles.inactive.Render(pr.GetState())
		if pr.GetState() == "open" {
			state = m.styles.success.Render(pr.GetState())
		}
		fmt.Fprintf(&b, "\n  %s %s [%s] %s",
			m.styles.prompt.Render(fmt.Sprintf("#%d", pr.GetNumber())),
			pr.GetTitle(),
			state,
			m.styles.inactive.Render("@"+pr.GetUser().GetLogin()),
		)
	}
	return b.String()
}
