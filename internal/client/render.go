package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/romashorodok/salon-platform/internal/salon"
)

// RenderSalonList writes the active salons grouped by group, in group order.
func RenderSalonList(w io.Writer, store *salon.Store) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tSALON\tID\tCHATTING\tLAST ACTIVITY")

	var rows int
	for _, g := range store.Groups() {
		for _, s := range store.SalonsByGroup(g.ID) {
			if !s.IsActive {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				g.Name, s.Name, s.ID, s.DisplayCount(), s.LastActivityAt.Format("15:04"))
			rows++
		}
	}
	if rows == 0 {
		fmt.Fprintln(tw, "-\tno active salons\t\t\t")
	}
	return tw.Flush()
}

// LobbyStatus is the chatting line shown before entering a salon.
func LobbyStatus(count int) string {
	if count > 0 {
		return fmt.Sprintf("%d people chatting...", count)
	}
	return "No one is chatting yet"
}

// RenderLobby writes the pre-join summary of a salon.
func RenderLobby(w io.Writer, store *salon.Store, salonID string, count int) error {
	s, ok := store.Salon(salonID)
	if !ok {
		_, err := fmt.Fprintln(w, "Salon not found")
		return err
	}
	g, ok := store.Group(s.GroupID)
	if !ok {
		_, err := fmt.Fprintln(w, "Salon not found")
		return err
	}

	var initials []string
	for i, p := range store.SalonParticipants(salonID) {
		if i == min(count, 4) {
			break
		}
		initials = append(initials, firstLetter(p.UserName))
	}
	for len(initials) < min(count, 4) {
		initials = append(initials, "?")
	}

	_, err := fmt.Fprintf(w, "%s - Coffee Chat Salon\n%d Members\n[%s]\n%s\n",
		g.Name, g.MemberCount, strings.Join(initials, " "), LobbyStatus(count))
	return err
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return "?"
}
