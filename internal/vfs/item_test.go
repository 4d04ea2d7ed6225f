package vfs_test

import (
	"errors"
	"testing"

	"vfs-go/internal/model"
	"vfs-go/internal/vfs"
)

func TestService_CreateItem(t *testing.T) {
	t.Run("creates item in volume", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")

		item, err := svc.CreateItem(v.ID)
		if err != nil {
			t.Fatalf("CreateItem() error = %v", err)
		}
		if item.VolumeID != v.ID {
			t.Errorf("VolumeID = %q, want %q", item.VolumeID, v.ID)
		}
		if item.Status != model.StatusActive {
			t.Errorf("Status = %v, want active", item.Status)
		}
	})

	t.Run("rejects unknown volume", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.CreateItem("no-such-id")
		if !vfs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})
}

func TestService_CreateRevision(t *testing.T) {
	t.Run("numbers revisions sequentially", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)

		r1 := mustRevision(t, svc, item.ID, "draft")
		r2 := mustRevision(t, svc, item.ID, "final")

		if r1.Number != 1 || r2.Number != 2 {
			t.Errorf("numbers = %d, %d, want 1, 2", r1.Number, r2.Number)
		}
	})

	t.Run("rejects ineligible contents type", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)

		_, err := svc.CreateRevision(item.ID,
			model.Ref{Type: "user", ID: "alice"},
			model.Ref{Type: "unregistered", ID: "x"},
			"draft", nil)
		if !vfs.IsValidation(err) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)

		_, err := svc.CreateRevision(item.ID,
			model.Ref{Type: "user", ID: "alice"},
			model.Ref{Type: "blob", ID: "key"},
			"   ", nil)
		if !vfs.IsValidation(err) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("defaults metadata to empty map", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)

		r := mustRevision(t, svc, item.ID, "draft")
		if r.Metadata == nil {
			t.Error("Metadata = nil, want empty map")
		}
	})
}

func TestService_GetRevision(t *testing.T) {
	svc := newTestService(t)
	v := mustVolume(t, svc, "docs")
	item := mustItem(t, svc, v.ID)
	rev := mustRevision(t, svc, item.ID, "draft")

	found, err := svc.GetRevision(rev.ID)
	if err != nil {
		t.Fatalf("GetRevision() error = %v", err)
	}
	if found.ID != rev.ID || found.Contents != rev.Contents {
		t.Errorf("GetRevision() = %+v, want %+v", found, rev)
	}

	if _, err := svc.GetRevision("no-such-revision"); !vfs.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestService_CurrentRevision(t *testing.T) {
	t.Run("newest revision is current", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)

		old := mustRevision(t, svc, item.ID, "draft")
		latest := mustRevision(t, svc, item.ID, "final")

		current, err := svc.CurrentRevision(item.ID)
		if err != nil {
			t.Fatalf("CurrentRevision() error = %v", err)
		}
		if current.ID != latest.ID {
			t.Errorf("current = %s, want %s", current.ID, latest.ID)
		}

		if ok, _ := svc.IsCurrent(latest); !ok {
			t.Error("IsCurrent(latest) = false, want true")
		}
		if ok, _ := svc.IsCurrent(old); ok {
			t.Error("IsCurrent(old) = true, want false")
		}
	})

	t.Run("item without revisions", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)

		_, err := svc.CurrentRevision(item.ID)
		if !errors.Is(err, vfs.ErrNoCurrentRevision) {
			t.Errorf("error = %v, want ErrNoCurrentRevision", err)
		}
	})
}

func TestService_ItemName(t *testing.T) {
	svc := newTestService(t)
	v := mustVolume(t, svc, "docs")
	item := mustItem(t, svc, v.ID)

	// No revisions yet: the item is nameless.
	name, err := svc.ItemName(item.ID)
	if err != nil {
		t.Fatalf("ItemName() error = %v", err)
	}
	if name != "" {
		t.Errorf("ItemName() = %q, want empty", name)
	}

	mustRevision(t, svc, item.ID, "draft.txt")
	mustRevision(t, svc, item.ID, "final.txt")

	name, err = svc.ItemName(item.ID)
	if err != nil {
		t.Fatalf("ItemName() error = %v", err)
	}
	if name != "final.txt" {
		t.Errorf("ItemName() = %q, want %q", name, "final.txt")
	}
}

func TestService_UpdateRevision(t *testing.T) {
	t.Run("updates name and metadata in place", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)
		r := mustRevision(t, svc, item.ID, "draft")

		updated, err := svc.UpdateRevision(r.ID, "renamed", map[string]string{"k": "v"})
		if err != nil {
			t.Fatalf("UpdateRevision() error = %v", err)
		}
		if updated.Name != "renamed" {
			t.Errorf("Name = %q, want %q", updated.Name, "renamed")
		}
		if updated.Number != r.Number {
			t.Errorf("Number changed: %d -> %d", r.Number, updated.Number)
		}

		// No new revision was appended.
		revisions, _ := svc.Revisions(item.ID)
		if len(revisions) != 1 {
			t.Errorf("len(revisions) = %d, want 1", len(revisions))
		}
	})

	t.Run("nil metadata keeps existing", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		item := mustItem(t, svc, v.ID)
		r, err := svc.CreateRevision(item.ID,
			model.Ref{Type: "user", ID: "alice"},
			model.Ref{Type: "blob", ID: "key"},
			"draft", map[string]string{"mime": "text/plain"})
		if err != nil {
			t.Fatalf("CreateRevision() error = %v", err)
		}

		updated, err := svc.UpdateRevision(r.ID, "renamed", nil)
		if err != nil {
			t.Fatalf("UpdateRevision() error = %v", err)
		}
		if updated.Metadata["mime"] != "text/plain" {
			t.Errorf("Metadata = %v, want mime preserved", updated.Metadata)
		}
	})
}

func TestService_SoftDeleteAndRestoreItem(t *testing.T) {
	svc := newTestService(t)
	v := mustVolume(t, svc, "docs")
	f := mustFolder(t, svc, vfs.CreateFolderParams{VolumeID: v.ID, Name: "reports"})
	item := mustItem(t, svc, v.ID)

	if err := svc.AddItemToFolder(item.ID, f.ID); err != nil {
		t.Fatalf("AddItemToFolder() error = %v", err)
	}

	if err := svc.SoftDeleteItem(item.ID); err != nil {
		t.Fatalf("SoftDeleteItem() error = %v", err)
	}
	items, _ := svc.FolderItems(f.ID)
	if len(items) != 0 {
		t.Errorf("soft-deleted item still listed: %d", len(items))
	}

	if err := svc.RestoreItem(item.ID); err != nil {
		t.Fatalf("RestoreItem() error = %v", err)
	}
	items, _ = svc.FolderItems(f.ID)
	if len(items) != 1 {
		t.Errorf("membership lost across status toggle: %d items", len(items))
	}
}

func TestService_DestroyItem(t *testing.T) {
	svc := newTestService(t)
	v := mustVolume(t, svc, "docs")
	f := mustFolder(t, svc, vfs.CreateFolderParams{VolumeID: v.ID, Name: "reports"})
	item := mustItem(t, svc, v.ID)
	rev := mustRevision(t, svc, item.ID, "draft")

	if _, err := svc.CreateComment(rev.ID, model.Ref{Type: "user", ID: "bob"}, "nice"); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if err := svc.AddItemToFolder(item.ID, f.ID); err != nil {
		t.Fatalf("AddItemToFolder() error = %v", err)
	}

	if err := svc.DestroyItem(item.ID); err != nil {
		t.Fatalf("DestroyItem() error = %v", err)
	}

	if _, err := svc.GetItem(item.ID); !vfs.IsNotFound(err) {
		t.Errorf("GetItem() error = %v, want NotFoundError", err)
	}
	if _, err := svc.Comments(rev.ID); !vfs.IsNotFound(err) {
		t.Errorf("Comments() error = %v, want NotFoundError", err)
	}
	items, _ := svc.FolderItems(f.ID)
	if len(items) != 0 {
		t.Errorf("membership survived destroy: %d items", len(items))
	}
	// The folder persists.
	if _, err := svc.GetFolder(f.ID); err != nil {
		t.Errorf("GetFolder() error = %v, want folder to persist", err)
	}
}

func TestService_Membership(t *testing.T) {
	t.Run("add validates both endpoints", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		f := mustFolder(t, svc, vfs.CreateFolderParams{VolumeID: v.ID, Name: "reports"})
		item := mustItem(t, svc, v.ID)

		if err := svc.AddItemToFolder("no-such-item", f.ID); !vfs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
		if err := svc.AddItemToFolder(item.ID, "no-such-folder"); !vfs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})

	t.Run("item appears in both directions", func(t *testing.T) {
		svc := newTestService(t)
		v := mustVolume(t, svc, "docs")
		f := mustFolder(t, svc, vfs.CreateFolderParams{VolumeID: v.ID, Name: "reports"})
		item := mustItem(t, svc, v.ID)

		if err := svc.AddItemToFolder(item.ID, f.ID); err != nil {
			t.Fatalf("AddItemToFolder() error = %v", err)
		}

		folders, err := svc.ItemFolders(item.ID)
		if err != nil {
			t.Fatalf("ItemFolders() error = %v", err)
		}
		if len(folders) != 1 || folders[0].ID != f.ID {
			t.Errorf("ItemFolders() = %v, want [%s]", folders, f.ID)
		}

		items, err := svc.FolderItems(f.ID)
		if err != nil {
			t.Fatalf("FolderItems() error = %v", err)
		}
		if len(items) != 1 || items[0].ID != item.ID {
			t.Errorf("FolderItems() = %v, want [%s]", items, item.ID)
		}

		if err := svc.RemoveItemFromFolder(item.ID, f.ID); err != nil {
			t.Fatalf("RemoveItemFromFolder() error = %v", err)
		}
		folders, _ = svc.ItemFolders(item.ID)
		if len(folders) != 0 {
			t.Errorf("membership survived removal")
		}
	})
}
