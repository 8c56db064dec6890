package controllers

import (
	"log"

	"Knockout/models"
)

// dispatchMatchWrite is the in-process stand-in for a document-write trigger:
// every persisted match write flows through here as a (before, after) pair.
// Advancement runs first; the result notice is failure-isolated so a mail
// problem can never hold up the bracket.
func (s *Server) dispatchMatchWrite(before, after *models.Match) {
	if err := s.Advancer.HandleWrite(before, after); err != nil {
		log.Printf("[trigger] advancement failed for match %s: %v", after.ID, err)
	}
	s.notifyMatchComplete(before, after)
}

// notifyMatchComplete emails both federations on a match's first transition
// into completed. Same guard as advancement: re-delivery of an already
// completed record sends nothing.
func (s *Server) notifyMatchComplete(before, after *models.Match) {
	if after == nil || after.Status != models.StatusCompleted {
		return
	}
	if before != nil && before.Status == models.StatusCompleted {
		return
	}
	if s.Mailer == nil || !s.Mailer.Enabled() {
		log.Println("[notify] mailer not configured; skipping result notice")
		return
	}

	home := models.Team{}
	if _, err := home.FindTeamByID(s.DB, after.HomeTeamID); err != nil {
		log.Printf("[notify] home team lookup failed: %v", err)
		return
	}
	away := models.Team{}
	if _, err := away.FindTeamByID(s.DB, after.AwayTeamID); err != nil {
		log.Printf("[notify] away team lookup failed: %v", err)
		return
	}

	recipients := []string{}
	if home.RepresentativeEmail != "" {
		recipients = append(recipients, home.RepresentativeEmail)
	}
	if away.RepresentativeEmail != "" {
		recipients = append(recipients, away.RepresentativeEmail)
	}
	if len(recipients) == 0 {
		log.Println("[notify] no recipient email found; skipping send")
		return
	}

	match := *after
	go func() {
		if err := s.Mailer.SendMatchResult(recipients, &home, &away, &match); err != nil {
			log.Printf("[notify] send failed for match %s: %v", match.ID, err)
			return
		}
		log.Printf("[notify] mail sent to: %v", recipients)
	}()
}
