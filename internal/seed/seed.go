// Package seed provisions the default admin credential and the sample
// catalog. It is shared by the server boot path, the standalone seed
// binary, and the seed endpoint, and is idempotent.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"digitalshelf/internal/model"
	"digitalshelf/internal/repository"
)

// Result reports what a seeding run actually inserted.
type Result struct {
	UsersCreated int `json:"users_created"`
	BooksCreated int `json:"books_created"`
}

// EnsureDefaults creates the admin credential when its username is absent
// and loads the sample books when the catalog is empty.
func EnsureDefaults(ctx context.Context, userRepo repository.UserRepository, bookRepo repository.BookRepository, adminUsername, adminPassword string) (*Result, error) {
	result := &Result{}

	exists, err := userRepo.ExistsByUsername(ctx, adminUsername)
	if err != nil {
		return nil, fmt.Errorf("check admin user: %w", err)
	}
	if !exists {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		admin := &model.User{
			Username:     adminUsername,
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("create admin user: %w", err)
		}
		result.UsersCreated++
	}

	count, err := bookRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if count == 0 {
		for _, book := range SampleBooks() {
			if err := bookRepo.Create(ctx, &book); err != nil {
				return result, fmt.Errorf("create sample book %q: %w", book.Title, err)
			}
			result.BooksCreated++
		}
	}

	return result, nil
}

// SampleBooks returns the starter catalog.
func SampleBooks() []model.Book {
	return []model.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Publisher: "Scribner", PublishedDate: "1925-04-10", Description: "A story of decadence and excess, Gatsby explores the darker aspects of the Jazz Age.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=1", URL: "https://example.com/gatsby", Rating: 5, Price: decimal.NewFromFloat(12.99), Featured: true},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Publisher: "Grand Central Publishing", PublishedDate: "1960-07-11", Description: "A powerful story of racial injustice and the loss of innocence in the American South.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=2", URL: "https://example.com/mockingbird", Rating: 4, Price: decimal.NewFromFloat(14.99), Featured: true},
		{Title: "1984", Author: "George Orwell", Publisher: "Signet Classic", PublishedDate: "1949-06-08", Description: "A dystopian novel about totalitarianism and the manipulation of truth and reality.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=3", URL: "https://example.com/1984", Rating: 5, Price: decimal.NewFromFloat(11.99), Featured: true},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Publisher: "Penguin Classics", PublishedDate: "1813-01-28", Description: "A classic romance novel exploring themes of love, marriage, and social class.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=4", URL: "https://example.com/pride", Rating: 4, Price: decimal.NewFromFloat(9.99)},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Publisher: "Houghton Mifflin Harcourt", PublishedDate: "1937-09-21", Description: "An epic fantasy adventure following Bilbo Baggins on his journey with thirteen dwarves.", Category: "Fantasy", Image: "https://picsum.photos/300/400?random=5", URL: "https://example.com/hobbit", Rating: 5, Price: decimal.NewFromFloat(15.99), Featured: true},
		{Title: "The Catcher in the Rye", Author: "J.D. Salinger", Publisher: "Little, Brown and Company", PublishedDate: "1951-07-16", Description: "A coming-of-age story about teenage alienation and loss of innocence in post-World War II America.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=6", URL: "https://example.com/catcher", Rating: 3, Price: decimal.NewFromFloat(13.99)},
		{Title: "Lord of the Flies", Author: "William Golding", Publisher: "Penguin Books", PublishedDate: "1954-09-17", Description: "A group of British boys stranded on an uninhabited island and their disastrous attempt to govern themselves.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=7", URL: "https://example.com/flies", Rating: 4, Price: decimal.NewFromFloat(10.99)},
		{Title: "Animal Farm", Author: "George Orwell", Publisher: "Signet", PublishedDate: "1945-08-17", Description: "A satirical allegory of the Russian Revolution and the rise of Stalinism.", Category: "Fiction", Image: "https://picsum.photos/300/400?random=8", URL: "https://example.com/farm", Rating: 4, Price: decimal.NewFromFloat(8.99)},
		{Title: "The Alchemist", Author: "Paulo Coelho", Publisher: "HarperOne", PublishedDate: "1988-01-01", Description: "A magical story about following your dreams and listening to your heart.", Category: "Fiction", URL: "https://example.com/alchemist", Rating: 5, Price: decimal.NewFromFloat(16.99), Featured: true},
		{Title: "Brave New World", Author: "Aldous Huxley", Publisher: "Harper Perennial", PublishedDate: "1932-01-01", Description: "A dystopian novel about a futuristic society controlled by technology and conditioning.", Category: "Fiction", URL: "https://example.com/brave", Rating: 4, Price: decimal.NewFromFloat(13.99)},
	}
}
