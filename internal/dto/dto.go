package dto

// TodoRequest - тело POST /todo и PUT /todo/{id}
type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TodoResponse - представление задачи в ответах API.
// Временные метки сериализуются строкой в формате "yyyy-MM-dd HH:mm:ss".
type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// PageResponse - страница задач плюс общее число записей во всём хранилище
type PageResponse struct {
	Content          []TodoResponse `json:"content"`
	NumberOfElements int64          `json:"numberOfElements"`
}
