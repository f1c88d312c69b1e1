package workflow

import "fmt"

const (
	CollectionProps         = "props"
	CollectionShows         = "shows"
	CollectionStatusHistory = "prop_status_history"
	CollectionNotifications = "notifications"
	CollectionTodoBoards    = "todo_boards"
)

func boardListsCollection(boardId string) string {
	return fmt.Sprintf("%s/%s/lists", CollectionTodoBoards, boardId)
}

func listCardsCollection(boardId, listId string) string {
	return fmt.Sprintf("%s/%s/lists/%s/cards", CollectionTodoBoards, boardId, listId)
}
