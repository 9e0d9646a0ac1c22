package proto

// NamespacedID formats a Minecraft-style "namespace:name" identifier,
// used for world and dimension names in several packet bodies.
type NamespacedID struct {
	Namespace string
	Name      string
}

func (n NamespacedID) String() string { return n.Namespace + ":" + n.Name }

// NSID builds a NamespacedID from an explicit namespace and name; no
// default namespace is applied.
func NSID(namespace, name string) NamespacedID {
	return NamespacedID{Namespace: namespace, Name: name}
}

// Overworld is the only dimension this server knows about.
var Overworld = NSID("minecraft", "overworld")
