package discord

import "github.com/bwmarrin/discordgo"

// ExtractModalValues returns the text input values of a submitted modal keyed by CustomID.
func ExtractModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string, len(data.Components))
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range row.Components {
			if input, ok := c.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
