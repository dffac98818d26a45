package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
)

// renderTable writes rows as an ASCII table.
func renderTable(out io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(out)
	table.Header(headers)
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func renderConversations(out io.Writer, list []domain.Conversation) error {
	if len(list) == 0 {
		fmt.Fprintln(out, "No conversations.")
		return nil
	}
	data := make([][]string, 0, len(list))
	for _, c := range list {
		data = append(data, []string{
			c.ID,
			c.SellerID,
			c.BuyerID,
			yesNo(c.ReadBySeller),
			yesNo(c.ReadByBuyer),
			c.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return renderTable(out, []string{"ID", "Seller", "Buyer", "Read by seller", "Read by buyer", "Updated"}, data)
}

func renderNavigation(out io.Writer, view *service.NavigationView) error {
	if view.User != nil {
		fmt.Fprintf(out, "Signed in as %s (seller: %s)\n", view.User.UserID, yesNo(view.User.IsSeller))
	} else {
		fmt.Fprintln(out, "Not signed in")
	}
	fmt.Fprintf(out, "Language: %s  Location: %s  Solid: %s\n", view.DefaultLanguage, view.DefaultLocation, yesNo(view.Solid))
	if view.ShowCategories {
		fmt.Fprintf(out, "Categories: %s\n", strings.Join(view.Categories, " | "))
	}

	data := make([][]string, 0, len(view.Menu))
	for _, item := range view.Menu {
		target := item.Path
		if target == "" {
			target = "(" + item.Action + ")"
		}
		data = append(data, []string{item.Label, target})
	}
	return renderTable(out, []string{"Menu", "Target"}, data)
}
