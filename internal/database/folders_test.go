package database

import (
	"testing"

	"github.com/google/uuid"

	"vfs-go/internal/model"
	"vfs-go/internal/vfs"
)

func TestSQLiteDatabase_CreateFolder(t *testing.T) {
	t.Run("creates root and child folders", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")

		root := mustCreateFolder(t, db, v.ID, nil, "reports")
		child := mustCreateFolder(t, db, v.ID, &root.ID, "2024")

		found, err := db.FindFolderByID(child.ID)
		if err != nil {
			t.Fatalf("FindFolderByID() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindFolderByID() returned nil")
		}
		if found.ParentID == nil || *found.ParentID != root.ID {
			t.Errorf("ParentID = %v, want %s", found.ParentID, root.ID)
		}
		if found.Status != model.StatusActive {
			t.Errorf("Status = %v, want active", found.Status)
		}
	})

	t.Run("rejects duplicate name under same parent", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		root := mustCreateFolder(t, db, v.ID, nil, "reports")
		mustCreateFolder(t, db, v.ID, &root.ID, "2024")

		err := db.CreateFolder(&model.Folder{
			ID: uuid.New().String(), VolumeID: v.ID, ParentID: &root.ID,
			Name: "2024", Status: model.StatusActive,
			CreatedAt: testTime, UpdatedAt: testTime,
		})
		if !vfs.IsValidation(err) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("rejects case-insensitive duplicate", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		mustCreateFolder(t, db, v.ID, nil, "Reports")

		err := db.CreateFolder(&model.Folder{
			ID: uuid.New().String(), VolumeID: v.ID,
			Name: "rePorts", Status: model.StatusActive,
			CreatedAt: testTime, UpdatedAt: testTime,
		})
		if !vfs.IsValidation(err) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("rejects duplicate root name in same volume", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		mustCreateFolder(t, db, v.ID, nil, "reports")

		err := db.CreateFolder(&model.Folder{
			ID: uuid.New().String(), VolumeID: v.ID,
			Name: "reports", Status: model.StatusActive,
			CreatedAt: testTime, UpdatedAt: testTime,
		})
		if !vfs.IsValidation(err) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("same name allowed under different parents", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		a := mustCreateFolder(t, db, v.ID, nil, "a")
		b := mustCreateFolder(t, db, v.ID, nil, "b")

		mustCreateFolder(t, db, v.ID, &a.ID, "shared")
		mustCreateFolder(t, db, v.ID, &b.ID, "shared")
	})

	t.Run("same root name allowed in different volumes", func(t *testing.T) {
		db := newTestDB(t)
		v1 := mustCreateVolume(t, db, "docs")
		v2 := mustCreateVolume(t, db, "media")

		mustCreateFolder(t, db, v1.ID, nil, "inbox")
		mustCreateFolder(t, db, v2.ID, nil, "inbox")
	})

	t.Run("same name allowed when statuses differ", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		f := mustCreateFolder(t, db, v.ID, nil, "reports")

		if err := db.UpdateFolderStatus(f.ID, model.StatusDeleted, testTime); err != nil {
			t.Fatalf("UpdateFolderStatus() error = %v", err)
		}

		// An active folder can reuse the name of a soft-deleted one.
		mustCreateFolder(t, db, v.ID, nil, "reports")
	})
}

func TestSQLiteDatabase_UpdateFolderStatus(t *testing.T) {
	t.Run("soft delete leaves descendants untouched", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		root := mustCreateFolder(t, db, v.ID, nil, "reports")
		child := mustCreateFolder(t, db, v.ID, &root.ID, "2024")

		if err := db.UpdateFolderStatus(root.ID, model.StatusDeleted, testTime); err != nil {
			t.Fatalf("UpdateFolderStatus() error = %v", err)
		}

		gotRoot, _ := db.FindFolderByID(root.ID)
		if gotRoot.Status != model.StatusDeleted {
			t.Errorf("root status = %v, want deleted", gotRoot.Status)
		}
		gotChild, _ := db.FindFolderByID(child.ID)
		if gotChild.Status != model.StatusActive {
			t.Errorf("child status = %v, want active", gotChild.Status)
		}
	})

	t.Run("restore conflicts with an active twin", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		f := mustCreateFolder(t, db, v.ID, nil, "reports")

		if err := db.UpdateFolderStatus(f.ID, model.StatusDeleted, testTime); err != nil {
			t.Fatalf("UpdateFolderStatus() error = %v", err)
		}
		mustCreateFolder(t, db, v.ID, nil, "reports")

		err := db.UpdateFolderStatus(f.ID, model.StatusActive, testTime)
		if !vfs.IsValidation(err) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
		// The message describes the restore conflict, not a create.
		if want := "name: an active folder with this name already exists"; err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})
}

func TestSQLiteDatabase_ListSubFolders(t *testing.T) {
	db := newTestDB(t)
	v := mustCreateVolume(t, db, "docs")
	root := mustCreateFolder(t, db, v.ID, nil, "reports")
	mustCreateFolder(t, db, v.ID, &root.ID, "zeta")
	mustCreateFolder(t, db, v.ID, &root.ID, "alpha")
	hidden := mustCreateFolder(t, db, v.ID, &root.ID, "hidden")

	if err := db.UpdateFolderStatus(hidden.ID, model.StatusDeleted, testTime); err != nil {
		t.Fatalf("UpdateFolderStatus() error = %v", err)
	}

	subs, err := db.ListSubFolders(root.ID)
	if err != nil {
		t.Fatalf("ListSubFolders() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[0].Name != "alpha" || subs[1].Name != "zeta" {
		t.Errorf("subs not ordered by name: %s, %s", subs[0].Name, subs[1].Name)
	}
}

func TestSQLiteDatabase_ListRootFolders(t *testing.T) {
	db := newTestDB(t)
	v := mustCreateVolume(t, db, "docs")
	other := mustCreateVolume(t, db, "media")

	mustCreateFolder(t, db, v.ID, nil, "b")
	root := mustCreateFolder(t, db, v.ID, nil, "a")
	mustCreateFolder(t, db, v.ID, &root.ID, "nested")
	mustCreateFolder(t, db, other.ID, nil, "elsewhere")

	roots, err := db.ListRootFolders(v.ID)
	if err != nil {
		t.Fatalf("ListRootFolders() error = %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("len(roots) = %d, want 2", len(roots))
	}
	if roots[0].Name != "a" || roots[1].Name != "b" {
		t.Errorf("roots not ordered by name: %s, %s", roots[0].Name, roots[1].Name)
	}
}

func TestSQLiteDatabase_DestroyFolder(t *testing.T) {
	t.Run("destroys whole subtree including soft-deleted descendants", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		root := mustCreateFolder(t, db, v.ID, nil, "reports")
		child := mustCreateFolder(t, db, v.ID, &root.ID, "2024")
		grandchild := mustCreateFolder(t, db, v.ID, &child.ID, "q1")

		if err := db.UpdateFolderStatus(child.ID, model.StatusDeleted, testTime); err != nil {
			t.Fatalf("UpdateFolderStatus() error = %v", err)
		}

		if err := db.DestroyFolder(root.ID); err != nil {
			t.Fatalf("DestroyFolder() error = %v", err)
		}

		for _, id := range []string{root.ID, child.ID, grandchild.ID} {
			if f, _ := db.FindFolderByID(id); f != nil {
				t.Errorf("folder %s survived destroy", id)
			}
		}
	})

	t.Run("removes permissions and membership, items persist", func(t *testing.T) {
		db := newTestDB(t)
		v := mustCreateVolume(t, db, "docs")
		folder := mustCreateFolder(t, db, v.ID, nil, "reports")
		item := mustCreateItem(t, db, v.ID)
		subject := model.Ref{Type: "user", ID: "u-1"}

		if err := db.AddItemToFolder(folder.ID, item.ID, testTime); err != nil {
			t.Fatalf("AddItemToFolder() error = %v", err)
		}
		if _, err := db.Grant(folder.ID, subject, []string{model.AuthRead}, testTime); err != nil {
			t.Fatalf("Grant() error = %v", err)
		}

		if err := db.DestroyFolder(folder.ID); err != nil {
			t.Fatalf("DestroyFolder() error = %v", err)
		}

		if i, _ := db.FindItemByID(item.ID); i == nil {
			t.Error("item destroyed with folder, want it to persist")
		}
		folders, err := db.FoldersVisibleTo(subject)
		if err != nil {
			t.Fatalf("FoldersVisibleTo() error = %v", err)
		}
		if len(folders) != 0 {
			t.Errorf("permissions survived destroy: %d folders visible", len(folders))
		}
		itemFolders, err := db.ListItemFolders(item.ID)
		if err != nil {
			t.Fatalf("ListItemFolders() error = %v", err)
		}
		if len(itemFolders) != 0 {
			t.Errorf("membership survived destroy: item in %d folders", len(itemFolders))
		}
	})
}
