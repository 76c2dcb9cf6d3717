// Package kvrepo implementa los repositorios de dominio sobre un kv.Store plano.
// Cada entidad vive bajo su prefijo (user:, pet:, message:, conversation:) serializada como JSON camelCase.
// Las entradas que no decodifican se saltean en los scans: el namespace no tiene schema.
package kvrepo
