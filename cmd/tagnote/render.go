package main

import (
	"fmt"
	"os"
)

// RenderCmd prints a stored note.
type RenderCmd struct {
	Note   string `arg:"" optional:"" type:"existingfile" help:"Note file (.json, .yaml). Defaults to the configured seed or the example note."`
	Format string `short:"f" enum:"text,html,json,yaml,values" default:"text" help:"Output format: ${enum}."`
}

func (cmd *RenderCmd) Run(g *Globals) error {
	n, err := openNote(cmd.Note, g.Config.Seed)
	if err != nil {
		return err
	}

	switch cmd.Format {
	case "text":
		fmt.Println(n.PlainText())
	case "html":
		fmt.Println(n.HTML())
	case "json", "yaml":
		data, err := encodeNote(n, cmd.Format == "yaml")
		if err != nil {
			return fmt.Errorf("encode note: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "values":
		for _, seg := range n.Segments() {
			if seg.IsText() {
				continue
			}
			fmt.Printf("%s\t%s\t%s\n", seg.Kind, seg.Text, seg.ValueString())
		}
		if d, ok := n.Date(); ok {
			fmt.Printf("date=%s\n", d)
		}
		if t, ok := n.Time(); ok {
			fmt.Printf("time=%s\n", t)
		}
	}
	return nil
}
