package menu

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/shellmenu/internal/action"
	"github.com/atomicstack/shellmenu/internal/logging/events"
	"github.com/google/uuid"
)

// parserContext carries the builder's ambient state: the stack of open menus,
// the item and action currently being filled. Every parse gets its own
// instance, so a pipemenu splice can run its own parse without touching the
// state of any other.
type parserContext struct {
	reg      *Registry
	menus    []*Menu
	item     *Item
	act      *action.Action
	inItem   bool
	pipemenu bool
}

func (c *parserContext) current() *Menu {
	if len(c.menus) == 0 {
		return nil
	}
	return c.menus[len(c.menus)-1]
}

// frame tracks one open element during the token walk.
type frame struct {
	name       string
	openedMenu bool
	isItem     bool
	skip       bool
	// key is set for leaf fields inside an <item>; their character data is
	// collected until the element closes.
	key  string
	text strings.Builder
}

// ParseDocument builds static menus from a full menu document. A document the
// decoder cannot parse aborts this source only; everything already built from
// it stays registered.
func ParseDocument(reg *Registry, r io.Reader) error {
	ctx := &parserContext{reg: reg}
	return parse(ctx, r)
}

// ParseFragment parses pipemenu output into root. Pipemenu output is usually
// a bare fragment without the outer wrapper element, which the token walk
// accepts as a sequence of top-level elements.
func ParseFragment(reg *Registry, root *Menu, r io.Reader) error {
	ctx := &parserContext{reg: reg, menus: []*Menu{root}, pipemenu: true}
	return parse(ctx, r)
}

func parse(ctx *parserContext, r io.Reader) error {
	dec := xml.NewDecoder(r)
	var stack []*frame

	skipping := func() bool {
		for _, f := range stack {
			if f.skip {
				return true
			}
		}
		return false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse menu markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skipping() {
				stack = append(stack, &frame{name: t.Name.Local, skip: true})
				continue
			}
			stack = append(stack, startElement(ctx, stack, t))
		case xml.CharData:
			if len(stack) == 0 || skipping() {
				continue
			}
			if top := stack[len(stack)-1]; top.key != "" {
				top.text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.skip {
				continue
			}
			endElement(ctx, top)
		}
	}
}

func startElement(ctx *parserContext, stack []*frame, t xml.StartElement) *frame {
	name := t.Name.Local
	switch {
	case strings.EqualFold(name, "menu"):
		return handleMenuElement(ctx, stack, t)
	case strings.EqualFold(name, "separator"):
		return handleSeparatorElement(ctx, t)
	case strings.EqualFold(name, "item"):
		return handleItemElement(ctx, t)
	}

	if ctx.inItem {
		if strings.EqualFold(name, "action") {
			if v, ok := attr(t, "name"); ok && v != "" {
				ctx.fillItem("name.action", v)
			}
			return &frame{name: name}
		}
		// Leaf field: collect text until the element closes. The key is
		// the dotted path from this element up to the enclosing item,
		// e.g. command.action for <command> inside <action>.
		return &frame{name: name, key: itemFieldKey(stack, name)}
	}

	// Wrapper or unrecognized element: walk into it and otherwise ignore.
	return &frame{name: name}
}

func endElement(ctx *parserContext, f *frame) {
	if f.key != "" {
		if content := strings.TrimSpace(f.text.String()); content != "" {
			ctx.fillItem(f.key, content)
		}
	}
	if f.isItem {
		ctx.inItem = false
		ctx.item = nil
		ctx.act = nil
	}
	if f.openedMenu {
		ctx.menus = ctx.menus[:len(ctx.menus)-1]
	}
}

// handleMenuElement disambiguates the three roles a <menu> element can have:
// a pipemenu link (id, label and execute), an inline (sub)menu definition
// (id and label, or a toplevel id directly under the document root) or a link
// to a menu defined elsewhere (id only).
func handleMenuElement(ctx *parserContext, stack []*frame, t xml.StartElement) *frame {
	id, _ := attr(t, "id")
	label, _ := attr(t, "label")
	execute, _ := attr(t, "execute")

	switch {
	case execute != "" && label != "":
		parent := ctx.current()
		if parent == nil {
			events.Parser.SequenceError("menu", label)
			return &frame{name: "menu", skip: true}
		}
		if id == "" {
			id = uuid.NewString()
		}
		events.Menu.PipemenuLink(id, label, execute)
		ctx.item = parent.AddItem(label, true)
		ctx.act = nil
		if ctx.item != nil {
			ctx.item.Execute = execute
			ctx.item.PipeID = id
		}
		return &frame{name: "menu", skip: true}

	case (label != "" && id != "") || isToplevelDefinition(ctx, stack, id):
		var link *Item
		if parent := ctx.current(); parent != nil {
			// Nested inline definition: the enclosing menu gets an
			// item pointing at the new submenu.
			link = parent.AddItem(label, true)
		}
		m := ctx.reg.Create(id, label, ctx.current(), ctx.pipemenu)
		if link != nil {
			link.Submenu = m
		}
		ctx.item = link
		ctx.act = nil
		ctx.menus = append(ctx.menus, m)
		return &frame{name: "menu", openedMenu: true}

	case id != "":
		parent := ctx.current()
		if parent == nil {
			events.Parser.SequenceError("menu", id)
			return &frame{name: "menu", skip: true}
		}
		// Only static menus may link by reference; a pipemenu could
		// otherwise open the root menu inside itself.
		if parent.IsPipemenu {
			events.Parser.StaticLinkFromPipemenu(id)
			return &frame{name: "menu", skip: true}
		}
		if m := ctx.reg.Lookup(id); m != nil {
			// A reference to a menu still being defined (itself or an
			// ancestor) would make the submenu graph cyclic and every
			// traversal over it unbounded.
			for _, open := range ctx.menus {
				if open == m {
					events.Menu.CyclicReference(id)
					return &frame{name: "menu", skip: true}
				}
			}
			ctx.item = parent.AddItem(m.Label, true)
			ctx.act = nil
			if ctx.item != nil {
				ctx.item.Submenu = m
			}
		} else {
			events.Menu.UnresolvedReference(id)
		}
		return &frame{name: "menu", skip: true}
	}

	return &frame{name: "menu", skip: true}
}

// isToplevelDefinition reports whether a bare <menu id=""> sits directly
// under the document root wrapper, which makes it a definition rather than a
// reference. Pipemenu parses never qualify: their menu stack is pre-seeded
// with the synthetic pipemenu root.
func isToplevelDefinition(ctx *parserContext, stack []*frame, id string) bool {
	return id != "" && len(ctx.menus) == 0 && len(stack) <= 1
}

func handleSeparatorElement(ctx *parserContext, t xml.StartElement) *frame {
	m := ctx.current()
	if m == nil {
		events.Parser.SequenceError("separator", "")
		return &frame{name: "separator", skip: true}
	}
	label, _ := attr(t, "label")
	ctx.item = m.AddSeparator(label)
	ctx.act = nil
	return &frame{name: "separator", skip: true}
}

func handleItemElement(ctx *parserContext, t xml.StartElement) *frame {
	if ctx.current() == nil {
		events.Parser.SequenceError("item", "")
		return &frame{name: "item", skip: true}
	}
	ctx.inItem = true
	ctx.item = nil
	ctx.act = nil
	for _, a := range t.Attr {
		if a.Value == "" {
			continue
		}
		ctx.fillItem(a.Name.Local, a.Value)
	}
	return &frame{name: "item", isItem: true}
}

// fillItem routes one (field, content) pair into the item under construction:
//
//	<item label="">
//	  <action name="">
//	    <command></command>
//	  </action>
//	</item>
//
// Fields arriving before their required predecessor are dropped and logged;
// the parse continues.
func (c *parserContext) fillItem(key, content string) {
	switch {
	case key == "label":
		c.item = c.current().AddItem(content, false)
		c.act = nil
	case c.item == nil:
		events.Parser.SequenceError(key, content)
	case key == "icon":
		// Icons are not supported; accepted silently so generated menus
		// with icon="" entries do not spam the log.
	case key == "name.action":
		a := action.New(content)
		if a == nil {
			events.Parser.UnknownAction(content)
			c.act = nil
			return
		}
		c.act = a
		c.item.Actions = append(c.item.Actions, a)
	case c.act == nil:
		events.Parser.SequenceError(key, content)
	default:
		c.act.AddArg(strings.TrimSuffix(key, ".action"), content)
	}
}

// itemFieldKey builds the dotted path of a leaf element inside an <item>,
// innermost segment first, stopping before the item element itself.
func itemFieldKey(stack []*frame, name string) string {
	parts := []string{name}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].isItem {
			break
		}
		parts = append(parts, stack[i].name)
	}
	return strings.Join(parts, ".")
}

func attr(t xml.StartElement, name string) (string, bool) {
	for _, a := range t.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}
