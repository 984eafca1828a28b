package items

import "github.com/abhisek/prepdeck/internal/api"

type itemsLoadedMsg struct {
	Items []api.KnowledgeItem
	Err   error
}

type itemCreatedMsg struct {
	Item *api.KnowledgeItem
	Err  error
}

type itemDeletedMsg struct {
	ID  string
	Err error
}
