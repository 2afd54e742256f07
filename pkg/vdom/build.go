package vdom

// El creates an element with an arbitrary tag.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(node, v)
		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}
		default:
			appendChild(node, arg)
		}
	}

	return node
}

func setAttr(node *VNode, a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[a.Key] = a.Value
}

func appendChild(node *VNode, child any) {
	switch v := child.(type) {
	case nil:
	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				node.Children = append(node.Children, c)
			}
		}
	case string:
		node.Children = append(node.Children, Text(v))
	case Component:
		node.Children = append(node.Children, &VNode{Kind: KindComponent, Comp: v})
	}
}
