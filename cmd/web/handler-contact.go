package main

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/myrjola/finbias/internal/models"
)

const (
	maxNameLength    = 200
	maxEmailLength   = 320
	maxMessageLength = 5000
)

type contactForm struct {
	Name    string
	Email   string
	Message string
}

type contactTemplateData struct {
	BaseTemplateData

	Form   contactForm
	Errors []string
	Sent   bool
}

func (app *application) contact(w http.ResponseWriter, r *http.Request) {
	data := contactTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Form:             contactForm{Name: "", Email: "", Message: ""},
		Errors:           nil,
		Sent:             r.URL.Query().Get("sent") == "1",
	}
	app.render(w, r, http.StatusOK, "contact", data)
}

func (f contactForm) validate() []string {
	var problems []string
	if f.Name == "" {
		problems = append(problems, "Please enter your name.")
	} else if len(f.Name) > maxNameLength {
		problems = append(problems, "Your name is too long.")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil || len(f.Email) > maxEmailLength {
		problems = append(problems, "Please enter a valid email address.")
	}
	if f.Message == "" {
		problems = append(problems, "Please enter a message.")
	} else if len(f.Message) > maxMessageLength {
		problems = append(problems, "Your message is too long.")
	}
	return problems
}

func (app *application) submitContact(w http.ResponseWriter, r *http.Request) {
	form := contactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	if problems := form.validate(); len(problems) > 0 {
		data := contactTemplateData{
			BaseTemplateData: app.newBaseTemplateData(r),
			Form:             form,
			Errors:           problems,
			Sent:             false,
		}
		app.render(w, r, http.StatusUnprocessableEntity, "contact", data)
		return
	}

	id, err := app.contacts.Add(r.Context(), models.ContactMessage{
		ID:        0,
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.observer.RecordContactMessage()
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "contact message received", slog.Int64("contact_id", id))

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}
