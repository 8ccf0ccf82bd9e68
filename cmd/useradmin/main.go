package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"user-server/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type step int

const (
	stepLoading step = iota
	stepBrowsing
	stepEnteringName
	stepEnteringEmail
	stepEnteringPhone
	stepConfirmingDelete
	stepSearching
)

type model struct {
	step         step
	baseURL      string
	users        []entities.User
	count        int64
	cursor       int
	searchTerm   string
	newName      string
	newEmail     string
	currentInput string
	message      string
	quitting     bool
}

type usersLoadedMsg struct {
	users []entities.User
	count int64
}
type userCreatedMsg entities.User
type userDeletedMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func apiBase() string {
	base := os.Getenv("USER_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}

func initialModel() model {
	return model{
		step:    stepLoading,
		baseURL: apiBase(),
		users:   []entities.User{},
	}
}

func (m model) Init() tea.Cmd {
	return loadUsers(m.baseURL, "")
}

func loadUsers(baseURL, term string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		listURL := baseURL + "/api/users"
		if term != "" {
			listURL = baseURL + "/api/users/search?name=" + url.QueryEscape(term)
		}

		resp, err := client.Get(listURL)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned %d", resp.StatusCode)}
		}

		var users []entities.User
		if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
			return errMsg{fmt.Errorf("bad response: %w", err)}
		}

		var count int64
		countResp, err := client.Get(baseURL + "/api/users/count")
		if err == nil {
			json.NewDecoder(countResp.Body).Decode(&count)
			countResp.Body.Close()
		}

		return usersLoadedMsg{users: users, count: count}
	}
}

func createUser(baseURL, name, email, phone string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"name":  name,
			"email": email,
			"phone": phone,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", baseURL+"/api/users", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			return errMsg{fmt.Errorf("create failed: %s", readErrorMessage(resp))}
		}

		var user entities.User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return errMsg{fmt.Errorf("bad response: %w", err)}
		}
		return userCreatedMsg(user)
	}
}

func deleteUser(baseURL string, id int64) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		req, _ := http.NewRequest("DELETE", fmt.Sprintf("%s/api/users/%d", baseURL, id), nil)
		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("delete failed: %s", readErrorMessage(resp))}
		}
		return userDeletedMsg{}
	}
}

func readErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err == nil && payload["error"] != "" {
		return payload["error"]
	}
	return resp.Status
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step == stepBrowsing || m.step == stepLoading {
			switch msg.String() {
			case "ctrl+c", "q":
				m.quitting = true
				return m, tea.Quit

			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}

			case "down", "j":
				if m.cursor < len(m.users)-1 {
					m.cursor++
				}

			case "c":
				m.step = stepEnteringName
				m.currentInput = ""
				m.message = ""

			case "d":
				if len(m.users) > 0 {
					m.step = stepConfirmingDelete
					m.message = ""
				}

			case "/":
				m.step = stepSearching
				m.currentInput = m.searchTerm
				m.message = ""

			case "r":
				m.step = stepLoading
				return m, loadUsers(m.baseURL, m.searchTerm)
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "esc":
			m.step = stepBrowsing
			m.currentInput = ""

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepEnteringName:
				if m.currentInput != "" {
					m.newName = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringEmail
				}

			case stepEnteringEmail:
				if m.currentInput != "" {
					m.newEmail = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPhone
				}

			case stepEnteringPhone:
				phone := m.currentInput
				m.currentInput = ""
				m.step = stepLoading
				m.message = "Creating user..."
				return m, createUser(m.baseURL, m.newName, m.newEmail, phone)

			case stepSearching:
				m.searchTerm = m.currentInput
				m.currentInput = ""
				m.cursor = 0
				m.step = stepLoading
				return m, loadUsers(m.baseURL, m.searchTerm)
			}

		case "y":
			if m.step == stepConfirmingDelete {
				m.step = stepLoading
				m.message = "Deleting user..."
				return m, deleteUser(m.baseURL, m.users[m.cursor].ID)
			}
			if m.step == stepEnteringName || m.step == stepEnteringEmail || m.step == stepEnteringPhone || m.step == stepSearching {
				m.currentInput += "y"
			}

		case "n":
			if m.step == stepConfirmingDelete {
				m.step = stepBrowsing
				return m, nil
			}
			if m.step == stepEnteringName || m.step == stepEnteringEmail || m.step == stepEnteringPhone || m.step == stepSearching {
				m.currentInput += "n"
			}

		default:
			if m.step == stepEnteringName || m.step == stepEnteringEmail || m.step == stepEnteringPhone || m.step == stepSearching {
				if len(msg.String()) == 1 || msg.String() == " " {
					m.currentInput += msg.String()
				}
			}
		}

	case usersLoadedMsg:
		m.users = msg.users
		m.count = msg.count
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		m.step = stepBrowsing
		m.message = ""

	case userCreatedMsg:
		m.message = successStyle.Render(fmt.Sprintf("Created user #%d (%s)", msg.ID, msg.Email))
		m.step = stepLoading
		return m, loadUsers(m.baseURL, m.searchTerm)

	case userDeletedMsg:
		m.message = successStyle.Render("User deleted")
		m.step = stepLoading
		return m, loadUsers(m.baseURL, m.searchTerm)

	case errMsg:
		m.message = errorStyle.Render("Error: " + msg.Error())
		m.step = stepBrowsing
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := titleStyle.Render("User Admin") + "\n"
	s += dimStyle.Render(fmt.Sprintf("%s  •  %d users total", m.baseURL, m.count)) + "\n\n"

	switch m.step {
	case stepLoading:
		s += "Loading...\n"

	case stepBrowsing:
		if m.searchTerm != "" {
			s += dimStyle.Render("filter: "+m.searchTerm) + "\n"
		}
		if len(m.users) == 0 {
			s += normalStyle.Render("No users found.") + "\n"
		}
		for i, u := range m.users {
			line := fmt.Sprintf("#%-4d %-25s %-30s %s", u.ID, u.Name, u.Email, u.Phone)
			if i == m.cursor {
				s += selectedStyle.Render("> "+line) + "\n"
			} else {
				s += normalStyle.Render(line) + "\n"
			}
		}
		s += "\n" + dimStyle.Render("c: create  d: delete  /: search  r: refresh  q: quit") + "\n"

	case stepEnteringName:
		s += promptStyle.Render("Name: ") + m.currentInput + "█\n"
		s += dimStyle.Render("enter: next  esc: cancel") + "\n"

	case stepEnteringEmail:
		s += promptStyle.Render("Email: ") + m.currentInput + "█\n"
		s += dimStyle.Render("enter: next  esc: cancel") + "\n"

	case stepEnteringPhone:
		s += promptStyle.Render("Phone (optional): ") + m.currentInput + "█\n"
		s += dimStyle.Render("enter: create  esc: cancel") + "\n"

	case stepConfirmingDelete:
		u := m.users[m.cursor]
		s += fmt.Sprintf("Delete user #%d (%s)? ", u.ID, u.Email)
		s += promptStyle.Render("y/n") + "\n"

	case stepSearching:
		s += promptStyle.Render("Search name: ") + m.currentInput + "█\n"
		s += dimStyle.Render("enter: search (empty lists all)  esc: cancel") + "\n"
	}

	if m.message != "" {
		s += "\n" + m.message + "\n"
	}

	return s
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
