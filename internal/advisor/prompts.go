package advisor

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

func descriptionPrompt(dishName string) string {
	return fmt.Sprintf("Create a short, delicious-sounding, and appealing menu description for a dish called %q. "+
		"The description should be no more than 25 words. Be creative, enticing, and use culinary terms.", dishName)
}

func imagePrompt(dishName, description string) string {
	return fmt.Sprintf("A professional, appetizing, vibrant, high-resolution photo of a restaurant dish called '%s'.\n"+
		"Description: '%s'.\n"+
		"The food should be beautifully presented on a clean plate, with a slightly blurred, colorful restaurant background.\n"+
		"The lighting should be bright and make the food look delicious.\n"+
		"Style: commercial food photography, hyper-realistic.", dishName, description)
}

func upsellPrompt(current []OrderLine, menu []MenuEntry) string {
	var b strings.Builder
	b.WriteString("Based on the current order, suggest 3 items from the menu that would be a great addition.\n")
	b.WriteString("Consider complementary items like drinks with food, or desserts.\n")
	b.WriteString("Do not suggest items that are already in the order.\n\nCurrent Order:\n")
	for _, l := range current {
		fmt.Fprintf(&b, "- %dx %s\n", l.Quantity, l.Name)
	}
	b.WriteString("\nFull Menu (name and category):\n")
	for _, m := range menu {
		fmt.Fprintf(&b, "- %s (%s)\n", m.Name, m.Category)
	}
	b.WriteString("\nReturn ONLY a JSON array of the exact names of the 3 suggested items.")
	return b.String()
}

func salesPrompt(d SalesDigest) string {
	top := make([]string, 0, len(d.TopSellingItems))
	for _, t := range d.TopSellingItems {
		top = append(top, fmt.Sprintf("%s (%d sold)", t.Name, t.Quantity))
	}

	methods := make([]string, 0, len(d.RevenueByPaymentMethod))
	for m := range d.RevenueByPaymentMethod {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	byMethod := make(map[string]string, len(methods))
	for _, m := range methods {
		byMethod[m] = d.RevenueByPaymentMethod[m].StringFixed(0)
	}
	methodsJSON, _ := json.Marshal(byMethod)

	return fmt.Sprintf(`You are a business analyst for a restaurant named "Loco Alitas".
Analyze the following sales data for a specific period and generate a concise, insightful summary for the restaurant owner.
The summary should be a maximum of 100 words.
Highlight key trends, top-performing items, and suggest one potential area for improvement or a business opportunity.

Sales Data:
- Total Revenue: %s COP
- Total Orders: %d
- Top Selling Items: %s
- Revenue by Payment Method: %s

Provide the response as a single block of text in Spanish.`,
		d.TotalRevenue.StringFixed(0), d.TotalOrders, strings.Join(top, ", "), methodsJSON)
}

func assistantPrompt(question string, ac AssistantContext) string {
	return fmt.Sprintf(`You are "LocoBot", the assistant of the "Loco Alitas" restaurant.
Be helpful, concise and slightly playful.
You MUST answer questions based ONLY on the context provided below.
If the answer is not in the context, say "No tengo esa información, ¡pero puedo preguntarle al chef!".
Answer in Spanish.

MENU:
%s
---
TABLES:
%s
---
INVENTORY:
%s
---
SALES TODAY:
- Total Revenue Today: %s COP
- Total Orders Today: %d
---

User Query: %q`,
		strings.Join(ac.Menu, "\n"), strings.Join(ac.Tables, "\n"), strings.Join(ac.Inventory, "\n"),
		ac.RevenueToday.StringFixed(0), ac.OrdersToday, question)
}
