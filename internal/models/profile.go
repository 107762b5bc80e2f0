package models

// ChildProfile is the singleton profile shown to the child
type ChildProfile struct {
	Name  string `json:"name"`
	Photo []byte `json:"photo,omitempty"`
}
