package main

import (
	"log"
	"os"

	"doc-engine-be/internal/model"
	"doc-engine-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

const welcomeContent = `{"root":{"children":[{"children":[{"detail":0,"format":1,"mode":"normal","style":"","text":"Welcome to the document engine","type":"text","version":1}],"direction":"ltr","format":"","indent":0,"type":"paragraph","version":1},{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Edit this document or create your own.","type":"text","version":1}],"direction":"ltr","format":"","indent":0,"type":"paragraph","version":1}],"direction":"ltr","format":"","indent":0,"type":"root","version":1}}`

const checklistContent = `{"root":{"children":[{"children":[{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Run the migration","type":"text","version":1}],"checked":true,"type":"listitem","value":1,"version":1},{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Seed sample documents","type":"text","version":1}],"checked":false,"type":"listitem","value":2,"version":1}],"listType":"check","start":1,"tag":"ul","type":"list","version":1}],"direction":"ltr","format":"","indent":0,"type":"root","version":1}}`

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Sample Documents...")

	documents := []model.Document{
		{Id: uuid.New(), Title: "Welcome", Namespace: "samples", Content: datatypes.JSON(welcomeContent), Seq: 1},
		{Id: uuid.New(), Title: "Getting Started Checklist", Namespace: "samples", Content: datatypes.JSON(checklistContent), Seq: 1},
	}

	for _, d := range documents {
		// Check if a document with this title already exists in the namespace
		var existing model.Document
		if err := db.Where("namespace = ? AND title = ?", d.Namespace, d.Title).First(&existing).Error; err == nil {
			log.Printf("Document '%s' already exists, skipping...", d.Title)
			continue
		}

		if err := db.Create(&d).Error; err != nil {
			log.Printf("Error creating document '%s': %v", d.Title, err)
			continue
		}

		rev := model.Revision{
			Id:         uuid.New(),
			DocumentId: d.Id,
			Seq:        1,
			Content:    d.Content,
		}
		if err := db.Create(&rev).Error; err != nil {
			log.Printf("Error creating revision for '%s': %v", d.Title, err)
		} else {
			log.Printf("Created document: %s (%s)", d.Title, d.Id)
		}
	}

	log.Println("Document seeding completed!")
}
